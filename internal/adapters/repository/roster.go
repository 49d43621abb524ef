package repository

import (
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/okian/padelmatch/internal/domain/model"
)

// RosterFile is the YAML layout of a roster file:
//
//	players:
//	  - id: alba
//	    name: Alba Ruiz
//	    rating: 8.4
//	    ...
//	pair_stats:
//	  - player_a: alba
//	    player_b: bruno
//	    ...
type RosterFile struct {
	Players   []model.Player    `koanf:"players"`
	PairStats []model.PairStats `koanf:"pair_stats"`
}

// LoadRoster reads a roster file. It only parses; validation happens when the
// registry is built.
func LoadRoster(path string) (*RosterFile, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRosterLoad, path, err)
	}
	var rf RosterFile
	if err := k.UnmarshalWithConf("", &rf, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRosterLoad, path, err)
	}
	if len(rf.Players) == 0 {
		return nil, fmt.Errorf("%w: %s: no players", ErrRosterLoad, path)
	}
	return &rf, nil
}
