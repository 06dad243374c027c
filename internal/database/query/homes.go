// Gathermap - Community Activity Tracking and Participant Home Mapping
// Copyright 2026 K. Weston (kweston)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kweston/gathermap

package query

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DOBRange holds optional date-of-birth bounds produced by a cohort
// converter. A nil bound leaves that side open.
type DOBRange struct {
	Min *time.Time
	Max *time.Time
}

// CohortRangeFunc converts a named age cohort into date-of-birth bounds
// anchored at reference. The boolean is false for names the converter
// does not recognize.
type CohortRangeFunc func(name string, reference time.Time) (DOBRange, bool)

// cohortUnknown matches participants with no recorded date of birth. It
// is handled inside the builder and never passed to the converter.
const cohortUnknown = "Unknown"

// HomeMarkersParams are the filter dimensions for the participant-home
// aggregation. Every filter is optional; zero values mean "unfiltered"
// on that dimension. Limit and Skip page the venue-level result rows.
type HomeMarkersParams struct {
	VenueIDs      []string
	PopulationIDs []string
	RoleIDs       []string
	AgeCohorts    []string
	StartDate     *time.Time
	EndDate       *time.Time
	Bounds        *BoundingBox
	Limit         int
	Skip          int

	// ReferenceDate anchors cohort-to-date conversion. Zero means "now";
	// tests pin it for deterministic SQL arguments.
	ReferenceDate time.Time
}

// ErrBuilderReused is returned by Build when called a second time on the
// same builder.
var ErrBuilderReused = errors.New("home markers builder is single-use: construct a new builder per statement")

// CTE names in assembly order.
const (
	cteFilteredVenues      = "filtered_venues"
	cteFilteredPopulations = "filtered_populations"
	cteCurrentAddresses    = "current_addresses"
	cteActiveAddresses     = "active_addresses"
)

type cteFragment struct {
	name string
	body string
}

// HomeMarkersBuilder assembles the participant-home statement for one set
// of params. Builders are single-use: the positional binder is consumed
// by Build, so a second Build would renumber placeholders.
type HomeMarkersBuilder struct {
	params      HomeMarkersParams
	cohortRange CohortRangeFunc
	binder      *Binder
	built       bool
}

// NewHomeMarkersBuilder returns a builder for params. The cohort converter
// is injected so cohort boundaries stay out of SQL assembly.
func NewHomeMarkersBuilder(params HomeMarkersParams, cohorts CohortRangeFunc) *HomeMarkersBuilder {
	return &HomeMarkersBuilder{
		params:      params,
		cohortRange: cohorts,
		binder:      NewBinder(),
	}
}

// Build assembles the statement and returns the SQL text with its bound
// arguments in placeholder order. It fails if any identifier in an
// allow-list is not a canonical UUID, and on reuse of the builder.
func (b *HomeMarkersBuilder) Build() (string, []any, error) {
	if b.built {
		return "", nil, ErrBuilderReused
	}
	b.built = true

	var ctes []cteFragment
	for _, build := range []func() (*cteFragment, error){
		b.filteredVenues,
		b.filteredPopulations,
		b.currentAddresses,
		b.activeAddresses,
	} {
		frag, err := build()
		if err != nil {
			return "", nil, err
		}
		if frag != nil {
			ctes = append(ctes, *frag)
		}
	}

	var sb strings.Builder
	sb.WriteString("WITH ")
	for i, cte := range ctes {
		if i > 0 {
			sb.WriteString(",\n")
		}
		sb.WriteString(cte.name)
		sb.WriteString(" AS (\n")
		sb.WriteString(cte.body)
		sb.WriteString("\n)")
	}
	sb.WriteString("\n")

	// current_addresses is unconditional, so ctes is never empty and the
	// last fragment is the narrowest address set.
	b.writeMainQuery(&sb, ctes[len(ctes)-1].name)

	return sb.String(), b.binder.Args(), nil
}

// Variant describes which filter dimensions are active, for metrics
// labels and logging. Tags appear in a fixed order joined by "+"; an
// unfiltered query is "base".
func (b *HomeMarkersBuilder) Variant() string {
	var tags []string
	if len(b.params.VenueIDs) > 0 {
		tags = append(tags, "geographic")
	}
	if len(b.params.PopulationIDs) > 0 {
		tags = append(tags, "population")
	}
	if len(b.params.RoleIDs) > 0 {
		tags = append(tags, "role")
	}
	if len(b.params.AgeCohorts) > 0 {
		tags = append(tags, "cohort")
	}
	if b.params.StartDate != nil || b.params.EndDate != nil {
		tags = append(tags, "temporal")
	}
	if b.params.Bounds != nil {
		tags = append(tags, "coordinates")
	}
	if len(tags) == 0 {
		return "base"
	}
	return strings.Join(tags, "+")
}

func (b *HomeMarkersBuilder) filteredVenues() (*cteFragment, error) {
	if len(b.params.VenueIDs) == 0 {
		return nil, nil
	}
	rows, err := uuidValueRows(b.params.VenueIDs)
	if err != nil {
		return nil, fmt.Errorf("venue filter: %w", err)
	}
	return &cteFragment{
		name: cteFilteredVenues,
		body: "\tSELECT venue_id FROM (VALUES " + rows + ") AS v (venue_id)",
	}, nil
}

func (b *HomeMarkersBuilder) filteredPopulations() (*cteFragment, error) {
	if len(b.params.PopulationIDs) == 0 {
		return nil, nil
	}
	rows, err := uuidValueRows(b.params.PopulationIDs)
	if err != nil {
		return nil, fmt.Errorf("population filter: %w", err)
	}
	return &cteFragment{
		name: cteFilteredPopulations,
		body: "\tSELECT population_id FROM (VALUES " + rows + ") AS p (population_id)",
	}, nil
}

// currentAddresses selects each participant's most recent address. The
// window ranks the full address history; filters apply to the top-ranked
// row afterwards, so a participant whose current address falls outside
// the filters is excluded rather than falling back to an older address.
func (b *HomeMarkersBuilder) currentAddresses() (*cteFragment, error) {
	var sb strings.Builder
	sb.WriteString(`	SELECT ranked.participant_id,
		ranked.venue_id,
		ranked.latitude,
		ranked.longitude,
		ranked.effective_from
	FROM (
		SELECT pa.participant_id,
			pa.venue_id,
			v.latitude,
			v.longitude,
			pa.effective_from,
			ROW_NUMBER() OVER (PARTITION BY pa.participant_id ORDER BY pa.effective_from DESC NULLS LAST) AS recency_rank
		FROM participant_addresses pa
		JOIN venues v ON v.id = pa.venue_id AND v.latitude IS NOT NULL AND v.longitude IS NOT NULL
	) ranked`)

	if len(b.params.VenueIDs) > 0 {
		sb.WriteString("\n\tJOIN " + cteFilteredVenues + " fv ON fv.venue_id = ranked.venue_id")
	}
	if len(b.params.RoleIDs) > 0 {
		sb.WriteString("\n\tJOIN role_assignments ra ON ra.participant_id = ranked.participant_id")
	}
	if len(b.params.AgeCohorts) > 0 {
		sb.WriteString("\n\tJOIN participants p ON p.id = ranked.participant_id")
	}

	conds := []string{"ranked.recency_rank = 1"}
	if b.params.Bounds != nil {
		conds = append(conds, b.params.Bounds.conditions("ranked.latitude", "ranked.longitude", b.binder)...)
	}
	if len(b.params.RoleIDs) > 0 {
		list, err := uuidInList(b.params.RoleIDs)
		if err != nil {
			return nil, fmt.Errorf("role filter: %w", err)
		}
		conds = append(conds, "ra.role_id IN ("+list+")")
	}
	if len(b.params.AgeCohorts) > 0 {
		ref := b.params.ReferenceDate
		if ref.IsZero() {
			ref = time.Now().UTC()
		}
		conds = append(conds, cohortCondition(b.params.AgeCohorts, ref, b.cohortRange, b.binder))
	}
	if len(b.params.PopulationIDs) > 0 {
		conds = append(conds, `EXISTS (
		SELECT 1
		FROM population_members pm
		JOIN `+cteFilteredPopulations+` fp ON fp.population_id = pm.population_id
		WHERE pm.participant_id = ranked.participant_id
	)`)
	}

	sb.WriteString("\n\tWHERE ")
	sb.WriteString(strings.Join(conds, "\n\t\tAND "))

	return &cteFragment{name: cteCurrentAddresses, body: sb.String()}, nil
}

// activeAddresses restricts current addresses to those active during the
// requested window: the address took effect no later than the window end,
// and no later-dated address had already taken effect by the window
// start. Undated addresses count as always having been in effect.
func (b *HomeMarkersBuilder) activeAddresses() (*cteFragment, error) {
	if b.params.StartDate == nil && b.params.EndDate == nil {
		return nil, nil
	}

	var conds []string
	if b.params.EndDate != nil {
		conds = append(conds,
			"(ca.effective_from IS NULL OR ca.effective_from <= "+b.binder.Bind(*b.params.EndDate)+")")
	}
	if b.params.StartDate != nil {
		conds = append(conds, `NOT EXISTS (
		SELECT 1
		FROM participant_addresses newer
		WHERE newer.participant_id = ca.participant_id
			AND newer.effective_from IS NOT NULL
			AND (ca.effective_from IS NULL OR newer.effective_from > ca.effective_from)
			AND newer.effective_from <= `+b.binder.Bind(*b.params.StartDate)+`
	)`)
	}

	body := `	SELECT ca.participant_id,
		ca.venue_id,
		ca.latitude,
		ca.longitude,
		ca.effective_from
	FROM ` + cteCurrentAddresses + ` ca
	WHERE ` + strings.Join(conds, "\n\t\tAND ")

	return &cteFragment{name: cteActiveAddresses, body: body}, nil
}

// writeMainQuery aggregates the narrowest address CTE into one row per
// venue. COUNT(*) OVER () runs after grouping and before LIMIT, so every
// page carries the total number of matching venues.
func (b *HomeMarkersBuilder) writeMainQuery(sb *strings.Builder, source string) {
	limit := b.binder.Bind(b.params.Limit)
	offset := b.binder.Bind(b.params.Skip)
	fmt.Fprintf(sb, `SELECT ca.venue_id,
	ca.latitude,
	ca.longitude,
	COUNT(DISTINCT ca.participant_id) AS participant_count,
	COUNT(*) OVER () AS total_count
FROM %s ca
GROUP BY ca.venue_id, ca.latitude, ca.longitude
ORDER BY ca.venue_id ASC
LIMIT %s OFFSET %s`, source, limit, offset)
}

// cohortCondition renders the date-of-birth predicate for a cohort list.
// Unknown matches participants with no recorded date of birth. Names the
// converter does not recognize are skipped; a list with no usable terms
// degrades to the always-true predicate, so a bad cohort filter widens
// results instead of silently emptying them.
func cohortCondition(cohorts []string, reference time.Time, convert CohortRangeFunc, binder *Binder) string {
	var terms []string
	for _, name := range cohorts {
		if name == cohortUnknown {
			terms = append(terms, "p.date_of_birth IS NULL")
			continue
		}
		if convert == nil {
			continue
		}
		r, ok := convert(name, reference)
		if !ok {
			continue
		}
		switch {
		case r.Min != nil && r.Max != nil:
			terms = append(terms, fmt.Sprintf("(p.date_of_birth >= %s AND p.date_of_birth < %s)",
				binder.Bind(*r.Min), binder.Bind(*r.Max)))
		case r.Min != nil:
			terms = append(terms, "p.date_of_birth >= "+binder.Bind(*r.Min))
		case r.Max != nil:
			terms = append(terms, "p.date_of_birth < "+binder.Bind(*r.Max))
		}
	}
	switch len(terms) {
	case 0:
		return "1=1"
	case 1:
		return terms[0]
	default:
		return "(" + strings.Join(terms, " OR ") + ")"
	}
}
