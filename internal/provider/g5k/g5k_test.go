package g5k

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/g5kbench/cassbench/internal/inventory"
	"github.com/g5kbench/cassbench/internal/provider"
)

type fakeAPI struct {
	mu         sync.Mutex
	submitted  jobSubmission
	polls      int
	deleted    []string
	finalState string
	nodes      []string
}

func (f *fakeAPI) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /sites/nancy/jobs", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		require.NoError(t, json.NewDecoder(r.Body).Decode(&f.submitted))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(Job{UID: 4242, State: "waiting"})
	})
	mux.HandleFunc("GET /sites/nancy/jobs/4242", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.polls++
		job := Job{UID: 4242, State: "waiting"}
		if f.polls >= 3 {
			job.State = f.finalState
			job.AssignedNodes = f.nodes
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(job)
	})
	mux.HandleFunc("DELETE /sites/nancy/jobs/{uid}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.deleted = append(f.deleted, r.PathValue("uid"))
		w.WriteHeader(http.StatusAccepted)
	})
	return mux
}

func newTestProvider(t *testing.T, api *fakeAPI) *Provider {
	t.Helper()
	srv := httptest.NewServer(api.handler(t))
	t.Cleanup(srv.Close)
	p, err := New(&Config{URL: srv.URL, PollInterval: time.Millisecond, Timeout: 5 * time.Second})
	require.NoError(t, err)
	return p
}

func request() provider.Request {
	return provider.Request{
		Site:        "nancy",
		Cluster:     "gros",
		Walltime:    "1:00:00",
		JobName:     "cassandra",
		NodeCount:   3,
		SeedCount:   1,
		ClientCount: 1,
	}
}

func TestReserve(t *testing.T) {
	api := &fakeAPI{
		finalState: "running",
		nodes:      []string{"gros-9.nancy.grid5000.fr", "gros-2.nancy.grid5000.fr", "gros-4.nancy.grid5000.fr", "gros-1.nancy.grid5000.fr"},
	}
	p := newTestProvider(t, api)

	r, err := p.Reserve(context.Background(), request())
	require.NoError(t, err)

	assert.Equal(t, "{cluster='gros'}/nodes=4,walltime=1:00:00", api.submitted.Resources)
	assert.Equal(t, []string{provider.DefaultJobType}, api.submitted.Types)
	assert.Equal(t, "cassandra", api.submitted.Name)
	assert.Equal(t, defaultCommand, api.submitted.Command)
	assert.Empty(t, api.submitted.Reservation)

	assert.Equal(t, Name, r.Provider)
	assert.Equal(t, 4242, r.JobID)
	assert.Equal(t, "nancy", r.Site)
	assert.Equal(t, []string{"gros-1.nancy.grid5000.fr"}, r.Seeds)
	assert.Equal(t, []string{"gros-2.nancy.grid5000.fr", "gros-4.nancy.grid5000.fr"}, r.NotSeeds)
	assert.Equal(t, []string{"gros-9.nancy.grid5000.fr"}, r.Clients)

	roles, err := r.Roles()
	require.NoError(t, err)
	assert.Len(t, roles[inventory.RoleHosts], 4)
	assert.Len(t, roles[inventory.RoleCassandra], 3)
}

func TestReserveFailedJobIsReleased(t *testing.T) {
	api := &fakeAPI{finalState: "error"}
	p := newTestProvider(t, api)

	_, err := p.Reserve(context.Background(), request())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ended in state error")
	assert.Equal(t, []string{"4242"}, api.deleted)
}

func TestReserveTooFewHosts(t *testing.T) {
	api := &fakeAPI{finalState: "running", nodes: []string{"gros-1.nancy.grid5000.fr", "gros-2.nancy.grid5000.fr"}}
	p := newTestProvider(t, api)

	_, err := p.Reserve(context.Background(), request())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "job 4242")
	assert.Equal(t, []string{"4242"}, api.deleted)
}

func TestReserveInvalidRequest(t *testing.T) {
	p := newTestProvider(t, &fakeAPI{})
	req := request()
	req.SeedCount = 4
	_, err := p.Reserve(context.Background(), req)
	assert.Error(t, err)
}

func TestDestroy(t *testing.T) {
	api := &fakeAPI{}
	p := newTestProvider(t, api)

	require.ErrorIs(t, p.Destroy(context.Background(), nil), provider.ErrNoReservation)
	require.Error(t, p.Destroy(context.Background(), &provider.Reservation{Provider: "static", JobID: 1}))

	require.NoError(t, p.Destroy(context.Background(), &provider.Reservation{Provider: Name, Site: "nancy", JobID: 77}))
	assert.Equal(t, []string{"77"}, api.deleted)
}
