package model

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// FinancialEntry is one society's collection record for a date.
type FinancialEntry struct {
	ID                      string    `json:"id"`
	Society                 Society   `json:"society"`
	Date                    Timestamp `json:"date"`
	Pledges                 float64   `json:"pledges"`
	SpecialEffort           float64   `json:"special_effort"`
	SundayCollection        float64   `json:"sunday_collection"`
	CircuitEventsCollection float64   `json:"circuit_events_collection"`
	Total                   float64   `json:"total"`
	CreatedBy               string    `json:"created_by"`
	CreatedAt               Timestamp `json:"created_at"`
}

// CreateFinancialEntryRequest is the body of POST /finances. The backend computes the total.
type CreateFinancialEntryRequest struct {
	Society                 Society   `json:"society"`
	Date                    Timestamp `json:"date"`
	Pledges                 float64   `json:"pledges"`
	SpecialEffort           float64   `json:"special_effort"`
	SundayCollection        float64   `json:"sunday_collection"`
	CircuitEventsCollection float64   `json:"circuit_events_collection"`
}

// FinancesListOptions filters GET /finances. Zero values are not sent.
type FinancesListOptions struct {
	Society   Society
	StartDate Timestamp
	EndDate   Timestamp
}

// NewFinancesListOptions parses filter inputs. Dates are YYYY-MM-DD; the end
// date is inclusive, so it is moved to the last second of that day.
func NewFinancesListOptions(society, startDate, endDate string) (FinancesListOptions, FieldErrors) {
	fe := FieldErrors{}
	var opts FinancesListOptions
	if strings.TrimSpace(society) != "" {
		s, ok := ParseSociety(society)
		if !ok {
			fe["society"] = "Unknown society"
		}
		opts.Society = s
	}
	if v := strings.TrimSpace(startDate); v != "" {
		ts, err := ParseDate(v)
		if err != nil {
			fe["start_date"] = "Start date must be YYYY-MM-DD"
		}
		opts.StartDate = ts
	}
	if v := strings.TrimSpace(endDate); v != "" {
		ts, err := ParseDate(v)
		if err != nil {
			fe["end_date"] = "End date must be YYYY-MM-DD"
		} else {
			ts = NewTimestamp(ts.Add(24*time.Hour - time.Second))
		}
		opts.EndDate = ts
	}
	if !opts.StartDate.IsZero() && !opts.EndDate.IsZero() && opts.EndDate.Before(opts.StartDate.Time) {
		fe["end_date"] = "End date must not be before start date"
	}
	return opts, fe.OrNil()
}

// FormatRand renders an amount in rand with two decimals.
func FormatRand(v float64) string {
	return "R" + FormatAmount(v)
}

// FormatAmount renders an amount with two decimals.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// FinanceDraft holds the raw financial entry form input. Amounts stay strings
// until submit so partial input can be redisplayed.
type FinanceDraft struct {
	Society                 string
	Date                    string
	SundayCollection        string
	Pledges                 string
	SpecialEffort           string
	CircuitEventsCollection string
}

// NewFinanceDraft returns an empty draft dated today.
func NewFinanceDraft(now time.Time) FinanceDraft {
	return FinanceDraft{Date: now.Format(DateLayout)}
}

type amountField struct {
	name  string
	label string
	value string
}

func (d FinanceDraft) amountFields() []amountField {
	return []amountField{
		{"sunday_collection", "Sunday collection", d.SundayCollection},
		{"pledges", "Pledges", d.Pledges},
		{"special_effort", "Special effort", d.SpecialEffort},
		{"circuit_events_collection", "Circuit events collection", d.CircuitEventsCollection},
	}
}

var errNotFinite = errors.New("amount is not a finite number")

// parseAmount treats blank as zero. NaN and infinities are rejected.
func parseAmount(value string) (float64, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, errNotFinite
	}
	return n, nil
}

// Total sums the amounts that parse; unparseable amounts count as zero.
func (d FinanceDraft) Total() float64 {
	var total float64
	for _, f := range d.amountFields() {
		if n, err := parseAmount(f.value); err == nil {
			total += n
		}
	}
	return total
}

// DisplayTotal is the live total shown next to the form, e.g. "150.00".
func (d FinanceDraft) DisplayTotal() string {
	return FormatAmount(d.Total())
}

// Validate reports field errors, or nil when the draft can be submitted.
func (d FinanceDraft) Validate() FieldErrors {
	fe := FieldErrors{}
	if strings.TrimSpace(d.Society) == "" {
		fe["society"] = "Society is required"
	} else if _, ok := ParseSociety(d.Society); !ok {
		fe["society"] = "Unknown society"
	}
	if strings.TrimSpace(d.Date) == "" {
		fe["date"] = "Date is required"
	} else if _, err := ParseDate(d.Date); err != nil {
		fe["date"] = "Date must be YYYY-MM-DD"
	}
	for _, f := range d.amountFields() {
		n, err := parseAmount(f.value)
		switch {
		case err != nil:
			fe[f.name] = fmt.Sprintf("%s must be a number", f.label)
		case n < 0:
			fe[f.name] = fmt.Sprintf("%s cannot be negative", f.label)
		}
	}
	return fe.OrNil()
}

// Request shapes the draft into the create payload.
func (d FinanceDraft) Request() (CreateFinancialEntryRequest, error) {
	if fe := d.Validate(); fe != nil {
		return CreateFinancialEntryRequest{}, fe
	}
	society, _ := ParseSociety(d.Society)
	date, _ := ParseDate(d.Date)
	req := CreateFinancialEntryRequest{Society: society, Date: date}
	req.SundayCollection, _ = parseAmount(d.SundayCollection)
	req.Pledges, _ = parseAmount(d.Pledges)
	req.SpecialEffort, _ = parseAmount(d.SpecialEffort)
	req.CircuitEventsCollection, _ = parseAmount(d.CircuitEventsCollection)
	return req, nil
}

// Reset clears the draft after a successful submit.
func (d *FinanceDraft) Reset() { *d = FinanceDraft{} }
