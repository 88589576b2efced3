package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		wantErr bool
	}{
		{name: "ok", req: Request{NodeCount: 3, SeedCount: 1, ClientCount: 1}},
		{name: "all-seeds", req: Request{NodeCount: 2, SeedCount: 2}},
		{name: "no-seed", req: Request{NodeCount: 3}, wantErr: true},
		{name: "too-many-seeds", req: Request{NodeCount: 1, SeedCount: 2}, wantErr: true},
		{name: "negative-clients", req: Request{NodeCount: 1, SeedCount: 1, ClientCount: -1}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestReservationPartition(t *testing.T) {
	req := Request{NodeCount: 3, SeedCount: 2, ClientCount: 1}
	assert.Equal(t, 1, req.NotSeedCount())
	assert.Equal(t, 4, req.Total())

	p, err := req.Partition([]string{"a", "b", "c", "d"})
	require.NoError(t, err)
	r := NewReservation("static", p)
	assert.Equal(t, []string{"a", "b"}, r.Seeds)

	back, err := r.Partition()
	require.NoError(t, err)
	assert.Equal(t, p, back)

	var missing *Reservation
	_, err = missing.Partition()
	assert.ErrorIs(t, err, ErrNoReservation)
}
