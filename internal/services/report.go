package services

import (
	"context"
	"strconv"
	"strings"

	"github.com/ems-dash/apiserver/internal/store"
	"github.com/ems-dash/apiserver/types"
)

// ReportRepository defines persistence operations for energy reports.
type ReportRepository interface {
	ListByReadingDate(ctx context.Context, order store.Order) ([]types.Report, error)
	Ping(ctx context.Context) ([]types.Report, error)
}

// ReportService encapsulates energy-report use-cases.
type ReportService struct {
	repo ReportRepository
}

func NewReportService(repo ReportRepository) *ReportService {
	return &ReportService{repo: repo}
}

// Dashboard returns every report row, oldest reading first.
func (s *ReportService) Dashboard(ctx context.Context) ([]types.Report, error) {
	return s.repo.ListByReadingDate(ctx, store.OrderAsc)
}

// Ping runs the store liveness query and returns its rows.
func (s *ReportService) Ping(ctx context.Context) ([]types.Report, error) {
	return s.repo.Ping(ctx)
}

// MeterWiseQuery carries the optional filter inputs for MeterWise.
// Empty strings mean the parameter was not supplied.
type MeterWiseQuery struct {
	MeterNo     string
	MachineName string
}

// FilteredView is the result when at least one filter was supplied.
// MeterNo and MachineName echo the query input or the first matching
// row's value; nil means neither was available.
type FilteredView struct {
	MeterNo     any
	MachineName any
	Data        []types.Report
}

// MachineGroup is one partition of the grouped view.
type MachineGroup struct {
	MeterNo     any
	MachineName string
	Data        []types.Report
}

// GroupedView is the result when no filter was supplied: one group per
// distinct meter/machine key, in first-encountered order.
type GroupedView struct {
	Machines []MachineGroup
}

// MeterWise fetches all rows newest-first and either filters them by the
// supplied criteria or partitions them by meter/machine key. Exactly one
// of the returned views is non-nil.
func (s *ReportService) MeterWise(ctx context.Context, q MeterWiseQuery) (*FilteredView, *GroupedView, error) {
	rows, err := s.repo.ListByReadingDate(ctx, store.OrderDesc)
	if err != nil {
		return nil, nil, err
	}
	if q.MeterNo != "" || q.MachineName != "" {
		return filterReports(rows, q), nil, nil
	}
	return nil, groupReports(rows), nil
}

// filterReports keeps rows matching either criterion. The combination is a
// logical OR: when both parameters are supplied, a row matching just one of
// them is still included.
func filterReports(rows []types.Report, q MeterWiseQuery) *FilteredView {
	wantMeter, meterOK := 0.0, false
	if q.MeterNo != "" {
		wantMeter, meterOK = parseNumber(q.MeterNo)
	}
	needle := strings.ToLower(q.MachineName)

	filtered := make([]types.Report, 0)
	for _, row := range rows {
		if meterOK {
			if mn, ok := row.MeterNo(); ok && mn == wantMeter {
				filtered = append(filtered, row)
				continue
			}
		}
		if q.MachineName != "" {
			if name, ok := row.MachineName(); ok && strings.Contains(strings.ToLower(name), needle) {
				filtered = append(filtered, row)
			}
		}
	}

	view := &FilteredView{Data: filtered}
	switch {
	case meterOK:
		view.MeterNo = wantMeter
	case q.MeterNo != "":
		// Non-numeric input was supplied; echo null rather than a row value.
	case len(filtered) > 0:
		if mn, ok := filtered[0].MeterNo(); ok && mn != 0 {
			view.MeterNo = mn
		}
	}
	if len(filtered) > 0 {
		if name, ok := filtered[0].MachineName(); ok {
			view.MachineName = name
		}
	}
	if view.MachineName == nil && q.MachineName != "" {
		view.MachineName = q.MachineName
	}
	return view
}

// groupReports partitions rows by meter number when set and non-zero, else
// machine name, else "Unknown". Meter keys and machine-name keys share one
// namespace, matching the upstream dashboard's behavior.
func groupReports(rows []types.Report) *GroupedView {
	groups := make(map[string]*MachineGroup)
	keys := make([]string, 0)

	for _, row := range rows {
		var key string
		var meterNo any
		machineName := "Unknown"

		if name, ok := row.MachineName(); ok {
			machineName = name
			key = name
		}
		if mn, ok := row.MeterNo(); ok && mn != 0 {
			meterNo = mn
			key = strconv.FormatFloat(mn, 'f', -1, 64)
		}
		if key == "" {
			key = "Unknown"
		}

		group, ok := groups[key]
		if !ok {
			group = &MachineGroup{MeterNo: meterNo, MachineName: machineName}
			groups[key] = group
			keys = append(keys, key)
		}
		group.Data = append(group.Data, row)
	}

	view := &GroupedView{Machines: make([]MachineGroup, 0, len(keys))}
	for _, key := range keys {
		view.Machines = append(view.Machines, *groups[key])
	}
	return view
}

func parseNumber(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
