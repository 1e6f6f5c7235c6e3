// Package filter compiles the loosely-typed list query bag into a typed
// recipe predicate plus a paging directive. It is pure: no database access.
package filter

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/oggyb/mealplanner/internal/db"
)

// Params is the raw query-parameter bag as received from the caller.
type Params map[string]string

const (
	ParamPage       = "page"
	ParamLimit      = "limit"
	ParamSort       = "sort"
	ParamStatus     = "status"
	ParamSearch     = "search"
	ParamCategory   = "category_recipe_id"
	ParamDifficulty = "difficult_level"
	ParamProcessing = "processing_food"
	ParamRegion     = "region"
	ParamInterval   = "interval_time"
	ParamType       = "type"
)

type Role int

const (
	// RoleChef scopes queries to the caller's own recipes.
	RoleChef Role = iota
	// RoleConsumer scopes queries to accepted public recipes.
	RoleConsumer
)

type Direction string

const (
	Desc Direction = "desc"
	Asc  Direction = "asc"
)

// AlbumScope selects standalone recipes, album recipes, or both.
type AlbumScope int

const (
	Standalone AlbumScope = iota
	AlbumOnly
	AnyAlbum
)

// Range is an inclusive minute range; Max absent means unbounded.
type Range struct {
	Min int
	Max Opt[int]
}

// Buckets are the interval_time values 0..4. Adjacent buckets share their
// endpoint: 15 minutes matches both bucket 0 and bucket 1.
var Buckets = []Range{
	{Min: 0, Max: Some(15)},
	{Min: 15, Max: Some(30)},
	{Min: 30, Max: Some(60)},
	{Min: 60, Max: Some(120)},
	{Min: 120, Max: None[int]()},
}

// maxSearchLen caps the search term in bytes, cut on a rune boundary.
const maxSearchLen = 100

// Predicate is the normalized recipe filter. Every facet is an Opt so that
// "absent" and "present with zero" stay distinct.
type Predicate struct {
	OwnerID        Opt[uint64]
	Status         Opt[db.RecipeStatus]
	ExcludeBanned  bool
	Search         Opt[string]
	CategoryID     Opt[uint64]
	Difficulty     Opt[db.Difficulty]
	Region         Opt[int]
	ProcessingFood Opt[string]
	Time           Opt[Range]
	Album          AlbumScope
}

type Paging struct {
	Page  int
	Limit int
	Sort  Direction
}

// Offset is the row offset of the page.
func (p Paging) Offset() int { return (p.Page - 1) * p.Limit }

type Limits struct {
	DefaultLimit int
	MaxLimit     int
}

// DefaultLimits applies when no configuration is supplied.
var DefaultLimits = Limits{DefaultLimit: 10, MaxLimit: 100}

// Compile turns params into a role-scoped predicate and paging directive.
// Malformed values never fail: they are coerced to absent or to defaults.
func Compile(role Role, callerID uint64, params Params, limits Limits) (Predicate, Paging) {
	var p Predicate

	switch role {
	case RoleChef:
		p.OwnerID = Some(callerID)
		p.ExcludeBanned = true
		if st, ok := parseInt(params[ParamStatus]).Get(); ok && st >= int(db.RecipePending) && st < int(db.RecipeBanned) {
			p.Status = Some(db.RecipeStatus(st))
		}
	default:
		p.Status = Some(db.RecipeAccepted)
	}

	p.Search = parseSearch(params[ParamSearch])

	if id, ok := parseInt(params[ParamCategory]).Get(); ok && id > 0 {
		p.CategoryID = Some(uint64(id))
	}
	if d, ok := parseInt(params[ParamDifficulty]).Get(); ok && d >= int(db.DifficultyEasy) && d <= int(db.DifficultyHard) {
		p.Difficulty = Some(db.Difficulty(d))
	}
	if r, ok := parseInt(params[ParamRegion]).Get(); ok && r >= 0 {
		p.Region = Some(r)
	}
	if s := strings.TrimSpace(params[ParamProcessing]); !isUnset(s) {
		p.ProcessingFood = Some(s)
	}
	if b, ok := parseInt(params[ParamInterval]).Get(); ok && b >= 0 && b < len(Buckets) {
		p.Time = Some(Buckets[b])
	}

	switch strings.ToLower(strings.TrimSpace(params[ParamType])) {
	case "album":
		p.Album = AlbumOnly
	case "all":
		p.Album = AnyAlbum
	default:
		p.Album = Standalone
	}

	return p, CompilePaging(params, limits)
}

// CompilePaging extracts page, limit and sort with defaults applied.
func CompilePaging(params Params, limits Limits) Paging {
	if limits.DefaultLimit <= 0 {
		limits.DefaultLimit = DefaultLimits.DefaultLimit
	}
	if limits.MaxLimit <= 0 {
		limits.MaxLimit = DefaultLimits.MaxLimit
	}

	pg := Paging{Page: 1, Limit: limits.DefaultLimit, Sort: Desc}
	if n, ok := parseInt(params[ParamPage]).Get(); ok && n > 0 {
		pg.Page = n
	}
	if n, ok := parseInt(params[ParamLimit]).Get(); ok && n > 0 {
		pg.Limit = min(n, limits.MaxLimit)
	}
	if strings.EqualFold(strings.TrimSpace(params[ParamSort]), string(Asc)) {
		pg.Sort = Asc
	}
	return pg
}

func isUnset(s string) bool {
	switch strings.ToLower(s) {
	case "", "all", "-1":
		return true
	}
	return false
}

// parseInt accepts integral numbers only. NaN, infinities, fractions and
// garbage are absent; "0" is present.
func parseInt(raw string) Opt[int] {
	s := strings.TrimSpace(raw)
	if isUnset(s) {
		return None[int]()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return None[int]()
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return None[int]()
	}
	return Some(int(f))
}

func parseSearch(raw string) Opt[string] {
	s := strings.ToLower(strings.Join(strings.Fields(raw), " "))
	if s == "" {
		return None[string]()
	}
	if len(s) > maxSearchLen {
		cut := maxSearchLen
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = strings.TrimSpace(s[:cut])
	}
	return Some(s)
}
