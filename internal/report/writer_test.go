package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/registerwatch/registerscan/internal/model"
)

// sampleRecords builds one subject with one interest.
func sampleRecords() []model.Record {
	amount := 5000.0
	registered := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	return []model.Record{
		&model.Subject{
			FullName:     "Jane Example",
			Kind:         model.SubjectKindPolitician,
			ParliamentID: "jane-example",
			Constituency: "Exampleshire",
			IsCurrentMP:  true,
			SourceURL:    "https://www.parliament.uk/financial-interests/jane-example/",
			ScrapeDate:   registered,
		},
		&model.Interest{
			PersonName:     "Jane Example",
			Type:           model.InterestEmployment,
			Description:    "Director, Company X.",
			Amount:         &amount,
			Currency:       "GBP",
			RegisteredDate: &registered,
			SourceURL:      "https://www.parliament.uk/financial-interests/jane-example/",
			ScrapeDate:     registered,
		},
	}
}

// TestJSONWriter tests the streaming array writer.
func TestJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("streams records as one array", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewJSONWriter(&buf)
		for _, record := range sampleRecords() {
			if err := w.Emit(record); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}
		if err := w.Close(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		decoded, err := model.DecodeRecords(buf.Bytes())
		if err != nil {
			t.Fatalf("output is not a decodable record array: %v", err)
		}
		if len(decoded) != 2 {
			t.Fatalf("expected 2 records, got %d", len(decoded))
		}
		if decoded[0].RecordKind() != "subject" || decoded[1].RecordKind() != "interest" {
			t.Errorf("unexpected record order: %s, %s", decoded[0].RecordKind(), decoded[1].RecordKind())
		}
	})

	t.Run("empty stream closes to an empty array", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if err := NewJSONWriter(&buf).Close(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.TrimSpace(buf.String()) != "[]" {
			t.Errorf("expected empty array, got %q", buf.String())
		}
	})

	t.Run("pretty printed output stays valid JSON", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewJSONWriter(&buf, WithPrettyPrint())
		for _, record := range sampleRecords() {
			if err := w.Emit(record); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}
		if err := w.Close(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var decoded []json.RawMessage
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("pretty output is not valid JSON: %v", err)
		}
		if !strings.Contains(buf.String(), "\n  ") {
			t.Error("expected indented output")
		}
	})

	t.Run("omits currency when absent", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewJSONWriter(&buf)
		if err := w.Emit(&model.Interest{
			PersonName: "Jane Example",
			Type:       model.InterestMiscellaneous,
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := w.Close(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if strings.Contains(buf.String(), "currency") {
			t.Error("currency must be omitted when no amount was parsed")
		}
	})
}

// TestNDJSONWriter tests the line-delimited writer.
func TestNDJSONWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := NewNDJSONWriter(&buf)
	for _, record := range sampleRecords() {
		if err := w.Emit(record); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	for i, line := range lines {
		var obj map[string]any
		if err := json.Unmarshal([]byte(line), &obj); err != nil {
			t.Errorf("line %d is not valid JSON: %v", i, err)
		}
	}
}

// failingWriter errors on every write.
type failingWriter struct{}

var errWrite = errors.New("write failed")

func (failingWriter) Write([]byte) (int, error) { return 0, errWrite }

// TestJSONWriterPropagatesWriteErrors ensures sink errors surface to
// the spider, which aborts the crawl on them.
func TestJSONWriterPropagatesWriteErrors(t *testing.T) {
	t.Parallel()

	w := NewJSONWriter(failingWriter{})
	if err := w.Emit(sampleRecords()[0]); !errors.Is(err, errWrite) {
		t.Errorf("expected write error, got %v", err)
	}
}

// TestMarkdownWriter tests the run summary rendering.
func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	report := model.NewCrawlReport("2023-06-12", []string{"https://www.parliament.uk/registers/"})
	report.OutputPath = "register_of_interests_2023-06-12.json"
	report.AddPage(model.PageVisit{URL: "https://www.parliament.uk/registers/", StatusCode: 200})
	report.AddSubject("Jane Example")
	report.AddInterest(model.InterestEmployment)
	report.AddInterest(model.InterestGift)
	report.AddFetchFailure("https://www.parliament.uk/financial-interests/gone/", errors.New("unexpected status 410"))
	report.AddGateViolation("subject count 1 below minimum 10")
	report.Finish()

	var buf bytes.Buffer
	if err := NewMarkdownWriter(&buf).WriteSummary(report); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := buf.String()
	for _, want := range []string{
		"# Register Crawl Report",
		"2023-06-12",
		"## Counts",
		"## Interests by Type",
		"employment",
		"## Fetch Failures",
		"unexpected status 410",
		"## Quality Gate Violations",
		"subject count 1 below minimum 10",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q", want)
		}
	}
}
