package domain

import "testing"

func TestQueryRequestValidate(t *testing.T) {
	three := 3
	zero := 0
	tooMany := 21

	cases := []struct {
		name    string
		req     QueryRequest
		wantErr bool
	}{
		{name: "minimal valid", req: QueryRequest{Query: "how to calibrate?"}},
		{name: "full valid", req: QueryRequest{
			Query:      "q",
			Language:   "en",
			Department: "technical",
			MaxResults: &three,
			PreviousMessages: []Message{
				{Role: RoleUser, Content: "earlier question"},
				{Role: RoleAssistant, Content: "earlier answer"},
				{Role: RoleSystem, Content: "instructions"},
			},
		}},
		{name: "empty query", req: QueryRequest{Query: ""}, wantErr: true},
		{name: "whitespace query", req: QueryRequest{Query: "   \t"}, wantErr: true},
		{name: "max_results below minimum", req: QueryRequest{Query: "q", MaxResults: &zero}, wantErr: true},
		{name: "max_results above maximum", req: QueryRequest{Query: "q", MaxResults: &tooMany}, wantErr: true},
		{name: "message without content", req: QueryRequest{
			Query:            "q",
			PreviousMessages: []Message{{Role: RoleUser}},
		}, wantErr: true},
		{name: "message with unknown role", req: QueryRequest{
			Query:            "q",
			PreviousMessages: []Message{{Role: "bot", Content: "hi"}},
		}, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.Validate()
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected validation error")
				}
				if !IsKind(err, ErrInvalidInput) {
					t.Fatalf("validation failures must be ErrInvalidInput, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate() error = %v", err)
			}
		})
	}
}

func TestQueryRequestLimitDefaults(t *testing.T) {
	if got := (QueryRequest{Query: "q"}).Limit(); got != 5 {
		t.Fatalf("default limit = %d, want 5", got)
	}
	seven := 7
	if got := (QueryRequest{Query: "q", MaxResults: &seven}).Limit(); got != 7 {
		t.Fatalf("explicit limit = %d, want 7", got)
	}
}

func TestQueryRequestWithMetadataDefaults(t *testing.T) {
	if !(QueryRequest{Query: "q"}).WithMetadata() {
		t.Fatalf("metadata defaults to included")
	}
	off := false
	if (QueryRequest{Query: "q", IncludeMetadata: &off}).WithMetadata() {
		t.Fatalf("explicit false must disable metadata")
	}
}
