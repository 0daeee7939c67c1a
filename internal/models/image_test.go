package models

import "testing"

func TestDiagnosisRequest_Image(t *testing.T) {
	tests := []struct {
		name         string
		req          DiagnosisRequest
		expectNil    bool
		expectKind   ImageKind
		expectConfl  bool
		expectSource string
	}{
		{
			name:      "text only",
			req:       DiagnosisRequest{Description: "leaky faucet under the sink"},
			expectNil: true,
		},
		{
			name:         "inline image",
			req:          DiagnosisRequest{Description: "crack", ImageBase64: "aGVsbG8=", ImageMediaType: "image/jpeg"},
			expectKind:   ImageKindInline,
			expectSource: "aGVsbG8=",
		},
		{
			name:      "base64 without media type is ignored",
			req:       DiagnosisRequest{Description: "crack", ImageBase64: "aGVsbG8="},
			expectNil: true,
		},
		{
			name:         "url image",
			req:          DiagnosisRequest{Description: "crack", ImageURL: "https://example.com/crack.jpg"},
			expectKind:   ImageKindURL,
			expectSource: "https://example.com/crack.jpg",
		},
		{
			name: "inline wins over url",
			req: DiagnosisRequest{
				Description:    "crack",
				ImageBase64:    "aGVsbG8=",
				ImageMediaType: "image/png",
				ImageURL:       "https://example.com/crack.jpg",
			},
			expectKind:   ImageKindInline,
			expectConfl:  true,
			expectSource: "aGVsbG8=",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := tt.req.Image()

			if tt.req.HasConflictingImages() != tt.expectConfl {
				t.Errorf("expected conflict=%v", tt.expectConfl)
			}

			if tt.expectNil {
				if img != nil {
					t.Fatalf("expected no image, got %+v", img)
				}
				return
			}

			if img == nil {
				t.Fatal("expected image, got nil")
			}
			if img.Kind != tt.expectKind {
				t.Errorf("expected kind %s, got %s", tt.expectKind, img.Kind)
			}

			source := img.Data
			if img.Kind == ImageKindURL {
				source = img.URL
			}
			if source != tt.expectSource {
				t.Errorf("expected source %q, got %q", tt.expectSource, source)
			}
		})
	}
}
