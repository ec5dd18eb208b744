package content

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/go-pkgz/lgr"
	"gopkg.in/yaml.v3"
)

//go:embed rules.yaml
var defaultRules []byte

// Rules holds the heuristic tables used by all extraction tiers
type Rules struct {
	Version    int            `yaml:"version"`
	Thresholds Thresholds     `yaml:"thresholds"`
	Extractor  ExtractorRules `yaml:"extractor"`
	Stripper   StripperRules  `yaml:"stripper"`
	Cleaner    CleanerRules   `yaml:"cleaner"`
}

// Thresholds are the empirically tuned text-length limits
type Thresholds struct {
	SemanticMinText  int `yaml:"semantic_min_text"`
	DensityMinText   int `yaml:"density_min_text"`
	SuccessMinText   int `yaml:"success_min_text"`
	WhitelistMinText int `yaml:"whitelist_min_text"`
	ReaderMinBytes   int `yaml:"reader_min_bytes"`
}

// ExtractorRules drive the main-content extractor
type ExtractorRules struct {
	NoiseTags         []string `yaml:"noise_tags"`
	SemanticSelectors []string `yaml:"semantic_selectors"`
	DensityCandidates string   `yaml:"density_candidates"`
	TidySelectors     []string `yaml:"tidy_selectors"`
}

// StripperRules drive the generic boilerplate stripper
type StripperRules struct {
	Selectors          []string `yaml:"selectors"`
	PhraseElements     string   `yaml:"phrase_elements"`
	Phrases            []string `yaml:"phrases"`
	LazyAttrs          []string `yaml:"lazy_attrs"`
	TrackingPixels     []string `yaml:"tracking_pixels"`
	PlaceholderMarkers []string `yaml:"placeholder_markers"`
}

// CleanerRules drive the site-aware cleaner
type CleanerRules struct {
	MainSelectors   []string `yaml:"main_selectors"`
	JunkSelectors   []string `yaml:"junk_selectors"`
	OrphanElements  string   `yaml:"orphan_elements"`
	OrphanMaxLength int      `yaml:"orphan_max_length"`
	EmptyElements   string   `yaml:"empty_elements"`
	JunkText        []string `yaml:"junk_text"`
}

// DefaultRules returns the embedded rule tables
func DefaultRules() (*Rules, error) {
	return ParseRules(defaultRules)
}

// LoadRules reads rule tables from a yaml file, empty path means embedded defaults
func LoadRules(path string) (*Rules, error) {
	if path == "" {
		return DefaultRules()
	}
	data, err := os.ReadFile(path) //nolint:gosec // path comes from config
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}
	return ParseRules(data)
}

// ParseRules parses yaml rule tables and fills missing thresholds with defaults
func ParseRules(data []byte) (*Rules, error) {
	var r Rules
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse rules: %w", err)
	}

	th := &r.Thresholds
	setDefault(&th.SemanticMinText, 200)
	setDefault(&th.DensityMinText, 300)
	setDefault(&th.SuccessMinText, 200)
	setDefault(&th.WhitelistMinText, 200)
	setDefault(&th.ReaderMinBytes, 500)
	setDefault(&r.Cleaner.OrphanMaxLength, 80)
	if r.Extractor.DensityCandidates == "" {
		r.Extractor.DensityCandidates = "div, section"
	}
	if r.Stripper.PhraseElements == "" {
		r.Stripper.PhraseElements = "div, aside, section, p, span, h2, h3, h4"
	}
	if r.Cleaner.OrphanElements == "" {
		r.Cleaner.OrphanElements = "p, div > span, li"
	}
	if r.Cleaner.EmptyElements == "" {
		r.Cleaner.EmptyElements = "p, div"
	}
	return &r, nil
}

func setDefault(v *int, def int) {
	if *v <= 0 {
		*v = def
	}
}

// compileSelectors compiles css selectors, invalid ones are logged and skipped
func compileSelectors(kind string, selectors ...string) []goquery.Matcher {
	res := make([]goquery.Matcher, 0, len(selectors))
	for _, s := range selectors {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		m, err := cascadia.Compile(s)
		if err != nil {
			lgr.Printf("[WARN] skip invalid %s selector %q: %v", kind, s, err)
			continue
		}
		res = append(res, m)
	}
	return res
}

// compileSelector compiles a single selector group, returns nil if invalid
func compileSelector(kind, selector string) goquery.Matcher {
	if ms := compileSelectors(kind, selector); len(ms) > 0 {
		return ms[0]
	}
	return nil
}

// lowerAll returns lower-cased, trimmed copies of the given strings
func lowerAll(list []string) []string {
	res := make([]string, 0, len(list))
	for _, s := range list {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			res = append(res, s)
		}
	}
	return res
}
