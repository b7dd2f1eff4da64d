package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateImage(t *testing.T) {
	tests := []struct {
		name        string
		size        int64
		contentType string
		wantErr     error
	}{
		{name: "small png", size: 1024, contentType: "image/png", wantErr: nil},
		{name: "exactly at limit", size: MaxImageSize, contentType: "image/jpeg", wantErr: nil},
		{name: "over limit", size: 2_000_000, contentType: "image/png", wantErr: ErrImageTooLarge},
		{name: "not an image", size: 1024, contentType: "application/pdf", wantErr: ErrNotAnImage},
		{name: "missing content type", size: 1024, contentType: "", wantErr: ErrNotAnImage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateImage(tt.size, tt.contentType)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
