package domain

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
)

// Catalog holds the governance taxonomy the validators check against. The
// defaults are compiled in; an override file may replace them at runtime.
type Catalog struct {
	EnterpriseFunctions map[string]string            `yaml:"enterprise_functions"`
	Subgroups           map[string]map[string]string `yaml:"subgroups"`
	DataLayers          []string                     `yaml:"data_layers"`
	Environments        []string                     `yaml:"environments"`
	DatabaseRegions     []string                     `yaml:"database_regions"`
	BucketUsageTypes    []string                     `yaml:"bucket_usage_types"`
	RoleUsageTypes      []string                     `yaml:"role_usage_types"`
	ComputeSizes        []string                     `yaml:"compute_sizes"`
	GrantPermissions    []string                     `yaml:"grant_permissions"`
	DatabasePrefixes    []string                     `yaml:"database_prefixes"`
	BucketPrefixes      []string                     `yaml:"bucket_prefixes"`
	RolePrefixes        []string                     `yaml:"role_prefixes"`
	MaxSessionHours     int                          `yaml:"max_session_hours"`
}

func DefaultCatalog() *Catalog {
	return &Catalog{
		EnterpriseFunctions: map[string]string{
			"AGTR": "Ag & Trading",
			"CORP": "Corporate",
			"FOOD": "Food",
			"SPEC": "Specialized Portfolio",
		},
		Subgroups: map[string]map[string]string{
			"AGTR": {
				"EMEA":     "Ag & Trading / EMEA",
				"NA":       "Ag & Trading / NA",
				"LATAM":    "Ag & Trading / LATAM",
				"APAC":     "Ag & Trading / APAC",
				"WTG":      "Ag & Trading / World Trading Group (WTG)",
				"WTG_CDAS": "Ag & Trading / World Trading Group (WTG) - Cargill Data Asset Solution (CDAS)",
				"OT":       "Ag & Trading / Ocean Transportation",
				"CRM":      "Ag & Trading / CRM (Cargill Risk Management)",
				"TCM":      "Ag & Trading / Trade & Capital Markets (TCM)",
				"MET":      "Ag & Trading / Metals",
			},
			"CORP": {
				"GI_SUST": "Corporate / Global Impact - Sustainability",
				"EHS":     "Corporate / Environment, Health & Safety (EHS)",
				"FIN":     "Corporate / Finance",
				"GTC":     "Corporate / Global Trade Compliance",
				"CPT":     "Corporate / Procurement & Transportation",
				"HR":      "Corporate / Human Resources",
				"AUDIT":   "Corporate / Audit",
				"DTD":     "Corporate / Digital Technology & Data",
				"LAW":     "Corporate / Law",
				"DTD_DPE": "Corporate / Digital Technology & Data - Data Platforms & Engineering",
				"RMG":     "Corporate / Risk Management Group",
				"FSQR":    "Corporate / Food Safety, Quality & Regulatory",
			},
			"FOOD": {
				"FSGL":     "Food / Food Solutions - All Regions - Global",
				"FS_NA":    "Food / Food Solutions - NA",
				"FS_LATAM": "Food / Food Solutions - LATAM",
				"FS_APAC":  "Food / Food Solutions - APAC",
				"FS_EMEA":  "Food / Food Solutions - EMEA",
				"PRGL":     "Food / Protein - All Regions - Global",
				"PR_LATAM": "Food / Protein - LATAM",
				"PR_NA":    "Food / Protein - NA",
				"PR_APAC":  "Food / Protein - APAC",
				"SALT":     "Food / Salt",
				"CE":       "Food / Commercial Excellence",
				"RD":       "Food / R&D (Research & Development)",
			},
			"SPEC": {
				"ANH": "Specialized Portfolio / Animal Nutrition",
				"CBI": "Specialized Portfolio / Bioindustrial (CBI)",
				"DS":  "Specialized Portfolio / Deicing Solution",
			},
		},
		DataLayers:       []string{"raw", "cln", "curated", "analytics"},
		Environments:     []string{"prd", "dev", "staging", "uat"},
		DatabaseRegions:  []string{"us-east-1", "us-west-2", "eu-west-1", "ap-southeast-1"},
		BucketUsageTypes: []string{"DataProduct", "Logging", "Archive", "Analytics", "Backup"},
		RoleUsageTypes:   []string{"EgressEngineer", "DataScientist", "DataEngineer", "Analyst"},
		ComputeSizes:     []string{"XSML", "SML", "MED", "LRG"},
		GrantPermissions: []string{"read", "write"},
		DatabasePrefixes: []string{"minerva_", "cargill_", "data_"},
		BucketPrefixes:   []string{"minerva-", "cargill-", "data-"},
		RolePrefixes:     []string{"minerva-", "cargill-", "data-"},
		MaxSessionHours:  12,
	}
}

// Validate rejects catalogs that would make every record unacceptable, such
// as an override file with an empty section.
func (c *Catalog) Validate() error {
	var errs []error
	if len(c.EnterpriseFunctions) == 0 {
		errs = append(errs, errors.New("enterprise_functions is empty"))
	}
	for code := range c.EnterpriseFunctions {
		if len(c.Subgroups[code]) == 0 {
			errs = append(errs, fmt.Errorf("enterprise function %s has no subgroups", code))
		}
	}
	for code := range c.Subgroups {
		if _, ok := c.EnterpriseFunctions[code]; !ok {
			errs = append(errs, fmt.Errorf("subgroups listed for unknown enterprise function %s", code))
		}
	}
	lists := map[string][]string{
		"data_layers":        c.DataLayers,
		"environments":       c.Environments,
		"database_regions":   c.DatabaseRegions,
		"bucket_usage_types": c.BucketUsageTypes,
		"role_usage_types":   c.RoleUsageTypes,
		"compute_sizes":      c.ComputeSizes,
		"grant_permissions":  c.GrantPermissions,
		"database_prefixes":  c.DatabasePrefixes,
		"bucket_prefixes":    c.BucketPrefixes,
		"role_prefixes":      c.RolePrefixes,
	}
	names := make([]string, 0, len(lists))
	for name := range lists {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if len(lists[name]) == 0 {
			errs = append(errs, fmt.Errorf("%s is empty", name))
		}
	}
	if c.MaxSessionHours < 1 {
		errs = append(errs, fmt.Errorf("max_session_hours must be at least 1 (got %d)", c.MaxSessionHours))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidCatalog, errors.Join(errs...))
	}
	return nil
}

func (c *Catalog) FunctionCodes() []string {
	return sortedKeys(c.EnterpriseFunctions)
}

func (c *Catalog) SubgroupCodes(function string) []string {
	return sortedKeys(c.Subgroups[strings.ToUpper(function)])
}

func (c *Catalog) SubgroupName(function, subgroup string) (string, bool) {
	name, ok := c.Subgroups[strings.ToUpper(function)][strings.ToUpper(subgroup)]
	return name, ok
}

func (c *Catalog) FunctionName(function string) (string, bool) {
	name, ok := c.EnterpriseFunctions[strings.ToUpper(function)]
	return name, ok
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}
