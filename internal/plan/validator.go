package plan

import (
	"fmt"
	"path"
	"strings"

	"github.com/g5kbench/cassbench/internal/actions"
)

type ValidationStep interface {
	Validate(plan []actions.Action) error
}

type PlanValidatorPipeline struct {
	stages []ValidationStep
}

func (p *PlanValidatorPipeline) Validate(plan *Plan) error {
	steps := plan.Steps()
	for _, v := range p.stages {
		if err := v.Validate(steps); err != nil {
			return fmt.Errorf("invalid plan %v: %w", plan.Name, err)
		}
	}
	return nil
}

func NewDefaultValidationPipeline() *PlanValidatorPipeline {
	return &PlanValidatorPipeline{
		stages: []ValidationStep{
			&DirectoryValidator{},
			&ContainerLifecycleValidator{},
		},
	}
}

// DirectoryValidator rejects uploads into a remote directory the plan has
// not created first.
type DirectoryValidator struct{}

func within(dir, p string) bool {
	dir, p = path.Clean(dir), path.Clean(p)
	return p == dir || strings.HasPrefix(p, strings.TrimSuffix(dir, "/")+"/")
}

func (s *DirectoryValidator) Validate(steps []actions.Action) error {
	var created []string
	for i, a := range steps {
		if !a.Todo.IsFileAction() {
			continue
		}
		if a.Todo == actions.ActionMakeDir {
			created = append(created, a.Path)
		}
		if a.Todo != actions.ActionUpload {
			continue
		}
		found := false
		for _, dir := range created {
			if within(dir, a.Path) {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%v/%v: upload to %v before creating it", i+1, len(steps), a.Path)
		}
	}
	return nil
}

// ContainerLifecycleValidator rejects starting a container the same plan
// removed without creating it again.
type ContainerLifecycleValidator struct{}

func (s *ContainerLifecycleValidator) Validate(steps []actions.Action) error {
	removed := map[string]bool{}
	for i, a := range steps {
		if !a.Todo.IsContainerAction() || a.Container == nil {
			continue
		}
		switch a.Todo {
		case actions.ActionRemoveContainer:
			removed[a.Container.Name] = true
		case actions.ActionEnsureContainer, actions.ActionRunContainer:
			removed[a.Container.Name] = false
		case actions.ActionStartContainer:
			if removed[a.Container.Name] {
				return fmt.Errorf("%v/%v: start of removed container %v", i+1, len(steps), a.Container.Name)
			}
		}
	}
	return nil
}
