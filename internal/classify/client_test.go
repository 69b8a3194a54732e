package classify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestParseClassification(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "raw json",
			input: `{"discipline": "Physics", "sub_field": "Optics", "paper_type": "Experimental", "confidence": 0.9, "summary": "Lasers."}`,
			want:  "Physics",
		},
		{
			name:  "fenced json",
			input: "Here you go:\n```json\n{\"discipline\": \"Biology\", \"confidence\": 0.8}\n```\nHope this helps!",
			want:  "Biology",
		},
		{
			name:  "fence without language tag",
			input: "```\n{\"discipline\": \"Chemistry\"}\n```",
			want:  "Chemistry",
		},
		{
			name:  "bare json inside prose",
			input: `The classification is {"discipline": "Mathematics", "confidence": 0.7} as requested.`,
			want:  "Mathematics",
		},
		{
			name:    "no json at all",
			input:   "I cannot classify this paper.",
			wantErr: true,
		},
		{
			name:    "json without discipline",
			input:   `{"sub_field": "Optics"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseClassification(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseClassification() = %+v, want error", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseClassification() error: %v", err)
			}
			if got.Discipline != tt.want {
				t.Errorf("discipline = %q, want %q", got.Discipline, tt.want)
			}
		})
	}
}

func chatReply(t *testing.T, content string) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("request path = %q", r.URL.Path)
		}
		resp := map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": content}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}
}

func TestClassify(t *testing.T) {
	srv := httptest.NewServer(chatReply(t,
		`{"discipline": "Agriculture", "sub_field": "Soil Science", "paper_type": "Experimental", "confidence": 0.85, "summary": "Soil nitrogen dynamics."}`))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL), WithAPIKey("test-key"))
	cls, err := c.Classify(context.Background(), "Soil Nitrogen", "We measure nitrogen.", []string{"soil"})
	if err != nil {
		t.Fatalf("Classify() error: %v", err)
	}
	if cls.Discipline != "Agriculture" || cls.SubField != "Soil Science" {
		t.Errorf("classification = %+v", cls)
	}
	if cls.Confidence != 0.85 {
		t.Errorf("confidence = %f, want 0.85", cls.Confidence)
	}
}

func TestClassifyServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL))
	if _, err := c.Classify(context.Background(), "Title", "", nil); err == nil {
		t.Error("Classify() against failing server returned nil error")
	}
}

func TestClassifySendsAuthorization(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		chatReply(t, `{"discipline": "Other"}`)(w, r)
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL), WithAPIKey("secret"))
	if _, err := c.Classify(context.Background(), "Title", "", nil); err != nil {
		t.Fatalf("Classify() error: %v", err)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("Authorization header = %q", gotAuth)
	}
}

func TestDefault(t *testing.T) {
	d := Default()
	if d.Discipline != "Other" || d.Confidence != 0 {
		t.Errorf("Default() = %+v", d)
	}
	if !IsKnownDiscipline(d.Discipline) {
		t.Error("default discipline missing from taxonomy")
	}
}

func TestIsKnownDiscipline(t *testing.T) {
	if !IsKnownDiscipline("Computer Science") {
		t.Error("Computer Science missing from taxonomy")
	}
	if IsKnownDiscipline("Astrology") {
		t.Error("unknown discipline accepted")
	}
}
