package export

import (
	"fmt"
	"strings"

	"github.com/c360studio/ppodgraph/graph"
	"github.com/c360studio/ppodgraph/vocabulary/ppod"
)

// Profile determines which upper-ontology alignments are included in the
// export.
type Profile string

const (
	// ProfileMinimal adds no alignment statements.
	ProfileMinimal Profile = "minimal"

	// ProfileBFO aligns entity classes with BFO and PROV-O.
	ProfileBFO Profile = "bfo"

	// ProfileCCO adds CCO alignment to the BFO profile.
	ProfileCCO Profile = "cco"
)

// ProfileConfig contains configuration for an export profile.
type ProfileConfig struct {
	// Name is the profile identifier.
	Name Profile

	// Description describes the profile.
	Description string

	// IncludeBFO indicates whether to include BFO alignment.
	IncludeBFO bool

	// IncludeCCO indicates whether to include CCO alignment.
	IncludeCCO bool

	// IncludePROV indicates whether to include PROV-O alignment.
	IncludePROV bool
}

// Profiles contains the configuration for all available export profiles.
var Profiles = map[Profile]ProfileConfig{
	ProfileMinimal: {
		Name:        ProfileMinimal,
		Description: "Spreadsheet vocabulary only",
	},
	ProfileBFO: {
		Name:        ProfileBFO,
		Description: "BFO and PROV-O class alignment",
		IncludeBFO:  true,
		IncludePROV: true,
	},
	ProfileCCO: {
		Name:        ProfileCCO,
		Description: "Full CCO/BFO/PROV-O alignment",
		IncludeBFO:  true,
		IncludeCCO:  true,
		IncludePROV: true,
	},
}

// GetProfileConfig returns the configuration for a profile.
func GetProfileConfig(profile Profile) ProfileConfig {
	if config, ok := Profiles[profile]; ok {
		return config
	}
	return Profiles[ProfileMinimal]
}

// ParseProfile parses a profile name. Empty means minimal.
func ParseProfile(s string) (Profile, error) {
	p := Profile(strings.ToLower(strings.TrimSpace(s)))
	if p == "" {
		return ProfileMinimal, nil
	}
	if _, ok := Profiles[p]; !ok {
		return "", fmt.Errorf("unsupported profile: %s (valid: minimal, bfo, cco)", s)
	}
	return p, nil
}

// TypeHierarchy represents the upper-ontology classes of an entity type.
type TypeHierarchy struct {
	Class     string
	PROVClass string
	BFOClass  string
	CCOClass  string
}

// GetTypeHierarchy returns the full type hierarchy for an entity type.
func GetTypeHierarchy(entityType ppod.EntityType) TypeHierarchy {
	return TypeHierarchy{
		Class:     entityType.ClassIRI(),
		PROVClass: ppod.PROVClassMap[entityType],
		BFOClass:  ppod.BFOClassMap[entityType],
		CCOClass:  ppod.CCOClassMap[entityType],
	}
}

// AlignmentTriples returns rdfs:subClassOf statements from each entity
// class to the upper-ontology classes the profile includes. Instances keep
// their single rdf:type.
func AlignmentTriples(profile Profile) []graph.Triple {
	cfg := GetProfileConfig(profile)
	var out []graph.Triple
	for _, t := range ppod.EntityTypes {
		h := GetTypeHierarchy(t)
		var supers []string
		if cfg.IncludePROV {
			supers = append(supers, h.PROVClass)
		}
		if cfg.IncludeBFO {
			supers = append(supers, h.BFOClass)
		}
		if cfg.IncludeCCO {
			supers = append(supers, h.CCOClass)
		}
		for _, super := range supers {
			if super == "" || super == h.Class {
				continue
			}
			out = append(out, graph.Triple{Subject: h.Class, Predicate: ppod.MetaSubClassOf, Object: graph.IRI(super)})
		}
	}
	return out
}
