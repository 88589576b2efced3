package plan

import (
	"cmp"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/g5kbench/cassbench/internal/actions"
)

func prioritizeActions(a, b actions.Action) int {
	return cmp.Compare(a.Priority, b.Priority)
}

// Plan is the ordered list of actions run on every host of a batch. Actions
// keep insertion order within the same priority.
type Plan struct {
	Name  string
	steps []actions.Action
}

func NewPlan(name string) *Plan {
	return &Plan{Name: name}
}

func (p *Plan) Add(a actions.Action) error {
	if err := a.Validate(); err != nil {
		return fmt.Errorf("invalid action for %v: %w", p.Name, err)
	}
	if a.Priority == 0 {
		priority, err := getDefaultPriority(a)
		if err != nil {
			return err
		}
		a.Priority = priority
	}
	p.steps = append(p.steps, a)
	slices.SortStableFunc(p.steps, prioritizeActions)
	return nil
}

func (p *Plan) Append(a ...actions.Action) error {
	for _, todo := range a {
		err := p.Add(todo)
		if err != nil {
			return fmt.Errorf("unable to append actions to plan: %w", err)
		}
	}
	return nil
}

func (p *Plan) Empty() bool {
	return len(p.steps) == 0
}

func (p *Plan) Size() int {
	return len(p.steps)
}

func (p *Plan) Steps() []actions.Action {
	return slices.Clone(p.steps)
}

func (p *Plan) Pretty() string {
	if p.Empty() {
		return "Nothing to do"
	}
	var result string
	result += fmt.Sprintf("Plan %v: \n", p.Name)
	for i, a := range p.steps {
		result += fmt.Sprintf("%v. %v\n", i+1, a.Pretty())
	}
	return result
}

func (p *Plan) PrettyLines() []string {
	if p.Empty() {
		return []string{""}
	}
	var result []string
	for i, a := range p.steps {
		result = append(result, fmt.Sprintf("%v. %v", i+1, a.Pretty()))
	}
	return result
}

func (p *Plan) ToJson() ([]byte, error) {
	return json.Marshal(p.steps)
}

// files are staged before the host is prepared, containers come last
func getDefaultPriority(a actions.Action) (int, error) {
	priorities := map[actions.ActionType]int{
		actions.ActionRemoveContainer: 1,
		actions.ActionMakeDir:         2,
		actions.ActionUpload:          3,
		actions.ActionShell:           4,
		actions.ActionSysctl:          4,
		actions.ActionPullImage:       5,
		actions.ActionEnsureContainer: 6,
		actions.ActionStartContainer:  7,
		actions.ActionRunContainer:    7,
		actions.ActionDownload:        8,
	}
	if priority, ok := priorities[a.Todo]; ok {
		return priority, nil
	}
	return -1, fmt.Errorf("invalid action type %v", a.Todo)
}
