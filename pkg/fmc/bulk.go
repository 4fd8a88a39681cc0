package fmc

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Static errors for err113 compliance.
var (
	ErrInvalidObjectValue = errors.New("invalid object value")
	ErrUnknownObjectKind  = errors.New("unknown object kind")
	ErrCSVFieldCount      = errors.New("CSV row must have name,type,value[,description]")
)

// ObjectEntry is one object in a bulk create, typically read from CSV.
type ObjectEntry struct {
	Name        string
	Kind        ObjectKind
	Value       string
	Description string
}

// BulkFailure records why a single entry failed.
type BulkFailure struct {
	Name   string
	Reason string
}

// BulkSummary reports the outcome of a bulk operation. API rejections are
// absorbed into the counts; only transport failures abort the run.
type BulkSummary struct {
	Total     int
	Succeeded int
	Failed    int
	Failures  []BulkFailure
}

// BulkManager creates network objects in bulk with per-item success and
// failure counting.
type BulkManager struct {
	objects NetworkObjectsClient
	logger  Logger
}

// NewBulkManager creates a bulk operations manager on top of a network
// objects client.
func NewBulkManager(objects NetworkObjectsClient, logger Logger) *BulkManager {
	if logger == nil {
		logger = NoopLogger()
	}

	return &BulkManager{
		objects: objects,
		logger:  logger,
	}
}

// CreateObjects creates every entry, validating values client-side first.
// A ResponseError from the API counts as a failure and the run continues; a
// transport failure stops the run and is returned alongside the partial
// summary.
func (m *BulkManager) CreateObjects(ctx context.Context, entries []ObjectEntry) (*BulkSummary, error) {
	summary := &BulkSummary{Total: len(entries)}

	m.logger.Info("starting bulk create", map[string]interface{}{"entries": len(entries)})

	for _, entry := range entries {
		err := validateEntry(entry)
		if err != nil {
			summary.Failed++
			summary.Failures = append(summary.Failures, BulkFailure{Name: entry.Name, Reason: err.Error()})
			m.logger.Warn("skipping invalid entry", map[string]interface{}{
				"name":   entry.Name,
				"reason": err.Error(),
			})

			continue
		}

		_, err = m.objects.Create(ctx, entry.Kind, &NetworkObjectCreateRequest{
			Name:        entry.Name,
			Type:        string(entry.Kind),
			Value:       entry.Value,
			Description: entry.Description,
		})
		if err != nil {
			respErr := &ResponseError{}
			if !errors.As(err, &respErr) {
				return summary, fmt.Errorf("bulk create aborted at %q: %w", entry.Name, err)
			}

			summary.Failed++
			summary.Failures = append(summary.Failures, BulkFailure{Name: entry.Name, Reason: respErr.Error()})
			m.logger.Error("create failed", map[string]interface{}{
				"name":  entry.Name,
				"error": respErr.Error(),
			})

			continue
		}

		summary.Succeeded++
		m.logger.Info("created", map[string]interface{}{"name": entry.Name})
	}

	return summary, nil
}

func validateEntry(entry ObjectEntry) error {
	switch entry.Kind {
	case KindHost:
		if !ValidateIPAddress(entry.Value) {
			return fmt.Errorf("%w: %q is not an IPv4 address", ErrInvalidObjectValue, entry.Value)
		}
	case KindNetwork:
		if !ValidateIPNetwork(entry.Value) {
			return fmt.Errorf("%w: %q is not an IPv4 network", ErrInvalidObjectValue, entry.Value)
		}
	case KindRange:
		start, end, found := strings.Cut(entry.Value, "-")
		if !found || !ValidateIPRange(start, end) {
			return fmt.Errorf("%w: %q is not an IPv4 range", ErrInvalidObjectValue, entry.Value)
		}
	case KindFQDN:
		if entry.Value == "" {
			return fmt.Errorf("%w: empty FQDN", ErrInvalidObjectValue)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownObjectKind, entry.Kind)
	}

	return nil
}

// ReadObjectsCSV parses entries from CSV rows of the form
// name,type,value[,description]. A leading header row is skipped.
func ReadObjectsCSV(r io.Reader) ([]ObjectEntry, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	var entries []ObjectEntry

	for line := 1; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("reading CSV: %w", err)
		}

		if line == 1 && strings.EqualFold(strings.TrimSpace(record[0]), "name") {
			continue
		}

		if len(record) < 3 {
			return nil, fmt.Errorf("%w: line %d", ErrCSVFieldCount, line)
		}

		entry := ObjectEntry{
			Name:  strings.TrimSpace(record[0]),
			Kind:  ObjectKind(strings.TrimSpace(record[1])),
			Value: strings.TrimSpace(record[2]),
		}

		if len(record) > 3 {
			entry.Description = strings.TrimSpace(record[3])
		}

		entries = append(entries, entry)
	}

	return entries, nil
}

// WriteObjectsCSV exports objects as name,type,value,description rows with a
// header, suitable for re-import.
func WriteObjectsCSV(w io.Writer, objects []NetworkObject) error {
	writer := csv.NewWriter(w)

	err := writer.Write([]string{"name", "type", "value", "description"})
	if err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}

	for _, obj := range objects {
		err = writer.Write([]string{obj.Name, obj.Type, obj.Value, obj.Description})
		if err != nil {
			return fmt.Errorf("writing CSV row: %w", err)
		}
	}

	writer.Flush()

	if err := writer.Error(); err != nil {
		return fmt.Errorf("flushing CSV: %w", err)
	}

	return nil
}
