// Package g5k reserves nodes through the Grid5000 REST API.
package g5k

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/charmbracelet/log"
	"github.com/go-resty/resty/v2"

	"github.com/g5kbench/cassbench/internal/provider"
)

const (
	Name           = "g5k"
	DefaultURL     = "https://api.grid5000.fr/stable"
	defaultCommand = "sleep 31536000"
	defaultPoll    = 10 * time.Second
	defaultTimeout = 2 * time.Hour
)

var errNotRunning = errors.New("job not running yet")

type Job struct {
	UID           int      `json:"uid"`
	State         string   `json:"state"`
	Name          string   `json:"name,omitempty"`
	AssignedNodes []string `json:"assigned_nodes"`
}

type jobSubmission struct {
	Resources   string   `json:"resources"`
	Command     string   `json:"command"`
	Types       []string `json:"types,omitempty"`
	Name        string   `json:"name,omitempty"`
	Reservation string   `json:"reservation,omitempty"`
}

type Provider struct {
	config *Config
	client *resty.Client
}

func New(cfg *Config) (*Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	client := resty.New().
		SetBaseURL(cfg.URL).
		SetHeader("Accept", "application/json").
		SetTimeout(time.Minute)
	if cfg.User != "" {
		client.SetBasicAuth(cfg.User, cfg.Password)
	}
	return &Provider{config: cfg, client: client}, nil
}

func (p *Provider) Name() string {
	return Name
}

// Resources returns the OAR resource expression for req.
func Resources(req provider.Request) string {
	return fmt.Sprintf("{cluster='%v'}/nodes=%v,walltime=%v", req.Cluster, req.Total(), req.Walltime)
}

func (p *Provider) Reserve(ctx context.Context, req provider.Request) (*provider.Reservation, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.Site == "" || req.Cluster == "" {
		return nil, errors.New("grid5000 reservations need a site and a cluster")
	}
	types := req.JobTypes
	if len(types) == 0 {
		types = []string{provider.DefaultJobType}
	}
	submission := jobSubmission{
		Resources:   Resources(req),
		Command:     p.config.Command,
		Types:       types,
		Name:        req.JobName,
		Reservation: req.Reservation,
	}
	var job Job
	resp, err := p.client.R().
		SetContext(ctx).
		SetPathParam("site", req.Site).
		SetBody(submission).
		SetResult(&job).
		Post("/sites/{site}/jobs")
	if err != nil {
		return nil, fmt.Errorf("error submitting job: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("error submitting job: %v: %v", resp.Status(), strings.TrimSpace(resp.String()))
	}
	log.Info("job submitted", "site", req.Site, "job", job.UID, "resources", submission.Resources)

	running, err := p.waitRunning(ctx, req.Site, job.UID)
	if err != nil {
		p.release(ctx, req.Site, job.UID)
		return nil, err
	}

	nodes := slices.Clone(running.AssignedNodes)
	slices.Sort(nodes)
	partition, err := req.Partition(nodes)
	if err != nil {
		p.release(ctx, req.Site, job.UID)
		return nil, fmt.Errorf("job %v: %w", job.UID, err)
	}
	r := provider.NewReservation(Name, partition)
	r.Site = req.Site
	r.JobID = job.UID
	return r, nil
}

func (p *Provider) Job(ctx context.Context, site string, uid int) (*Job, error) {
	var job Job
	resp, err := p.client.R().
		SetContext(ctx).
		SetPathParams(map[string]string{"site": site, "uid": strconv.Itoa(uid)}).
		SetResult(&job).
		Get("/sites/{site}/jobs/{uid}")
	if err != nil {
		return nil, fmt.Errorf("error fetching job %v: %w", uid, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("error fetching job %v: %v", uid, resp.Status())
	}
	return &job, nil
}

func (p *Provider) waitRunning(ctx context.Context, site string, uid int) (*Job, error) {
	policy := backoff.NewConstantBackOff(p.config.PollInterval)
	deadline, cancel := context.WithTimeout(ctx, p.config.Timeout)
	defer cancel()

	var job *Job
	err := backoff.Retry(func() error {
		var err error
		job, err = p.Job(deadline, site, uid)
		if err != nil {
			return err
		}
		switch job.State {
		case "running":
			return nil
		case "error", "terminated", "killed":
			return backoff.Permanent(fmt.Errorf("job %v ended in state %v", uid, job.State))
		}
		log.Debug("waiting for job", "job", uid, "state", job.State)
		return errNotRunning
	}, backoff.WithContext(policy, deadline))
	if err != nil {
		return nil, fmt.Errorf("error waiting for job %v: %w", uid, err)
	}
	log.Info("job running", "job", uid, "nodes", len(job.AssignedNodes))
	return job, nil
}

// release deletes a job that will never be handed back to the caller.
func (p *Provider) release(ctx context.Context, site string, uid int) {
	if err := p.deleteJob(context.WithoutCancel(ctx), site, uid); err != nil {
		log.Warn("unable to release job", "job", uid, "err", err)
	}
}

func (p *Provider) deleteJob(ctx context.Context, site string, uid int) error {
	resp, err := p.client.R().
		SetContext(ctx).
		SetPathParams(map[string]string{"site": site, "uid": strconv.Itoa(uid)}).
		Delete("/sites/{site}/jobs/{uid}")
	if err != nil {
		return fmt.Errorf("error deleting job %v: %w", uid, err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil
	}
	if resp.IsError() {
		return fmt.Errorf("error deleting job %v: %v", uid, resp.Status())
	}
	return nil
}

func (p *Provider) Destroy(ctx context.Context, r *provider.Reservation) error {
	if r == nil || r.JobID == 0 {
		return provider.ErrNoReservation
	}
	if r.Provider != Name {
		return fmt.Errorf("reservation belongs to provider %v", r.Provider)
	}
	if err := p.deleteJob(ctx, r.Site, r.JobID); err != nil {
		return err
	}
	log.Info("job released", "site", r.Site, "job", r.JobID)
	return nil
}
