// Package store provides record-store backends: the tabular persistence
// layer holding processed ids, contacts, and the append target.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"

	"github.com/mhalder/jobsift/internal/model"
	"github.com/mhalder/jobsift/internal/retry"
)

// errMissingRange marks a read against a tab or range the spreadsheet does
// not have.
var errMissingRange = errors.New("range not found")

// SheetStore is the Google Sheets record store backend. Reads and the
// append both go through the Sheets API with service-account credentials.
type SheetStore struct {
	svc           *sheets.Service
	spreadsheetID string
	jobsTab       string
	contactsTab   string
	policy        retry.Policy
	logger        *slog.Logger
}

// NewSheetStore creates a store for the given spreadsheet using a
// service-account credentials file.
func NewSheetStore(ctx context.Context, spreadsheetID, jobsTab, contactsTab, credentialsFile string, policy retry.Policy, logger *slog.Logger) (*SheetStore, error) {
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return NewSheetStoreWithService(svc, spreadsheetID, jobsTab, contactsTab, policy, logger), nil
}

// NewSheetStoreWithService wires a store around an existing Sheets service.
// Used by tests pointing the service at a fake backend.
func NewSheetStoreWithService(svc *sheets.Service, spreadsheetID, jobsTab, contactsTab string, policy retry.Policy, logger *slog.Logger) *SheetStore {
	return &SheetStore{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		jobsTab:       jobsTab,
		contactsTab:   contactsTab,
		policy:        policy,
		logger:        logger,
	}
}

// readRange fetches one A1 range with retries. A tab the spreadsheet does
// not have surfaces errMissingRange without retrying.
func (s *SheetStore) readRange(ctx context.Context, rng string) ([][]any, error) {
	return retry.Do(ctx, s.policy, s.logger, "sheets read "+rng, func(ctx context.Context) ([][]any, error) {
		resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, rng).Context(ctx).Do()
		if err != nil {
			var apiErr *googleapi.Error
			if errors.As(err, &apiErr) {
				if apiErr.Code == http.StatusBadRequest || apiErr.Code == http.StatusNotFound {
					return nil, retry.Permanent(fmt.Errorf("range %q: %w", rng, errMissingRange))
				}
				return nil, &model.HTTPError{StatusCode: apiErr.Code, Err: err}
			}
			return nil, fmt.Errorf("sheets read %s: %w", rng, err)
		}
		return resp.Values, nil
	})
}

// ReadProcessedIDs reads the jobs tab and collects the id column. A missing
// tab or missing id header yields an empty set, not an error.
func (s *SheetStore) ReadProcessedIDs(ctx context.Context) (model.IDSet, error) {
	values, err := s.readRange(ctx, s.jobsTab)
	if err != nil {
		if errors.Is(err, errMissingRange) {
			return make(model.IDSet), nil
		}
		return nil, err
	}
	if len(values) == 0 {
		return make(model.IDSet), nil
	}

	idCol := -1
	for i, h := range values[0] {
		if cell(h) == model.ColID {
			idCol = i
			break
		}
	}
	if idCol < 0 {
		return make(model.IDSet), nil
	}

	ids := make(model.IDSet, len(values)-1)
	for _, row := range values[1:] {
		if idCol >= len(row) {
			continue
		}
		if id := cell(row[idCol]); id != "" {
			ids[id] = struct{}{}
		}
	}
	return ids, nil
}

// ReadContacts reads the contacts tab, keying fields by its header row.
// Rows without a company are skipped: they can never match.
func (s *SheetStore) ReadContacts(ctx context.Context) ([]model.Contact, error) {
	values, err := s.readRange(ctx, s.contactsTab)
	if err != nil {
		return nil, err
	}
	if len(values) < 2 {
		return nil, nil
	}

	cols := make(map[string]int, len(values[0]))
	for i, h := range values[0] {
		cols[strings.ToLower(cell(h))] = i
	}

	var contacts []model.Contact
	for _, row := range values[1:] {
		c := model.Contact{
			Name:     field(row, cols, "name"),
			Position: field(row, cols, "position"),
			Company:  field(row, cols, "company"),
			URL:      field(row, cols, "url"),
		}
		if c.Company == "" {
			continue
		}
		contacts = append(contacts, c)
	}
	return contacts, nil
}

// AppendRows resolves the jobs tab header row once and writes each row
// positionally. A header the rows do not recognize is written empty. Missing
// tab, empty header row, or a header row without the id column is fatal.
func (s *SheetStore) AppendRows(ctx context.Context, outRows []model.OutputRow) (int, error) {
	if len(outRows) == 0 {
		return 0, nil
	}

	values, err := s.readRange(ctx, s.jobsTab+"!1:1")
	if err != nil {
		if errors.Is(err, errMissingRange) {
			return 0, fmt.Errorf("jobs tab %q does not exist in spreadsheet %s", s.jobsTab, s.spreadsheetID)
		}
		return 0, err
	}
	if len(values) == 0 || len(values[0]) == 0 {
		return 0, fmt.Errorf("jobs tab %q has no header row", s.jobsTab)
	}

	headers := make([]string, len(values[0]))
	hasID := false
	for i, h := range values[0] {
		headers[i] = cell(h)
		if headers[i] == model.ColID {
			hasID = true
		}
	}
	if !hasID {
		return 0, fmt.Errorf("jobs tab %q is missing the %q header", s.jobsTab, model.ColID)
	}

	data := make([][]any, 0, len(outRows))
	for _, r := range outRows {
		row := make([]any, len(headers))
		for i, h := range headers {
			row[i] = r.Value(h)
		}
		data = append(data, row)
	}

	_, err = s.svc.Spreadsheets.Values.
		Append(s.spreadsheetID, s.jobsTab, &sheets.ValueRange{Values: data}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return 0, fmt.Errorf("sheets append: %w", err)
	}

	return len(outRows), nil
}

func cell(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func field(row []any, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(row) {
		return ""
	}
	return cell(row[i])
}
