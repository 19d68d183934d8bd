package validator

import (
	"testing"

	"beacon-attendance/modules/beacon/dto"
)

func TestValidateCreateBeaconRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     dto.CreateBeaconRequest
		wantErr bool
	}{
		{"valid", dto.CreateBeaconRequest{ID: "b1", Location: "Room A", Major: 10, Minor: 3}, false},
		{"missing id", dto.CreateBeaconRequest{Location: "Room A"}, true},
		{"missing location", dto.CreateBeaconRequest{ID: "b1"}, true},
		{"major out of range", dto.CreateBeaconRequest{ID: "b1", Location: "Room A", Major: 70000}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateCreateBeaconRequest(&tt.req).HasError()
			if got != tt.wantErr {
				t.Fatalf("HasError() = %v, want %v", got, tt.wantErr)
			}
		})
	}
}
