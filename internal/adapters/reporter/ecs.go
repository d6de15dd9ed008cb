package reporter

import (
	"context"
	"fmt"
	"net/http"
	"wiwbot/internal/core/domain"

	"github.com/tidwall/gjson"
)

// ECS reports endpoints that serve load balancer -> listener -> rule -> [app] JSON documents.
type ECS struct {
	client *http.Client
}

func NewECS(client *http.Client) *ECS {
	if client == nil {
		client = &http.Client{}
	}

	return &ECS{client: client}
}

func (e *ECS) Format() domain.Format {
	return domain.FormatECS
}

func (e *ECS) Report(ctx context.Context, config domain.EndpointConfig) (string, error) {
	status, body, err := get(ctx, e.client, config.URL, config.APIToken)
	if err != nil {
		return "", err
	}

	if status != http.StatusOK {
		return "", &domain.UpstreamError{StatusCode: status, Body: string(body)}
	}

	topology, err := ParseTopology(body)
	if err != nil {
		return "", err
	}

	return topology.Render(), nil
}

// ParseTopology decodes an ECS document keeping the key order of the wire format. A repeated key keeps the
// position of its first occurrence and the value of its last.
func ParseTopology(body []byte) (domain.Topology, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: invalid JSON", domain.ErrMalformedTopology)
	}

	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: expected an object of load balancers", domain.ErrMalformedTopology)
	}

	topology := domain.Topology{}
	seen := map[string]int{}
	var err error

	root.ForEach(func(lbName, listeners gjson.Result) bool {
		lb := domain.LoadBalancer{Name: lbName.String()}

		lb.Listeners, err = parseListeners(lb.Name, listeners)
		if err != nil {
			return false
		}

		topology = upsert(topology, seen, lb.Name, lb)
		return true
	})
	if err != nil {
		return nil, err
	}

	return topology, nil
}

func parseListeners(lb string, value gjson.Result) ([]domain.Listener, error) {
	if !value.IsObject() {
		return nil, fmt.Errorf("%w: listeners of %q are not an object", domain.ErrMalformedTopology, lb)
	}

	var listeners []domain.Listener
	seen := map[string]int{}
	var err error

	value.ForEach(func(name, rules gjson.Result) bool {
		listener := domain.Listener{Name: name.String()}

		listener.Rules, err = parseRules(listener.Name, rules)
		if err != nil {
			return false
		}

		listeners = upsert(listeners, seen, listener.Name, listener)
		return true
	})

	return listeners, err
}

func parseRules(listener string, value gjson.Result) ([]domain.Rule, error) {
	if !value.IsObject() {
		return nil, fmt.Errorf("%w: rules of %q are not an object", domain.ErrMalformedTopology, listener)
	}

	var rules []domain.Rule
	seen := map[string]int{}
	var err error

	value.ForEach(func(name, apps gjson.Result) bool {
		if !apps.IsArray() {
			err = fmt.Errorf("%w: apps of rule %q are not a list", domain.ErrMalformedTopology, name.String())
			return false
		}

		rule := domain.Rule{Name: name.String()}
		for _, app := range apps.Array() {
			rule.Apps = append(rule.Apps, app.String())
		}

		rules = upsert(rules, seen, rule.Name, rule)
		return true
	})

	return rules, err
}

func upsert[S ~[]T, T any](items S, index map[string]int, name string, item T) S {
	if i, ok := index[name]; ok {
		items[i] = item
		return items
	}

	index[name] = len(items)
	return append(items, item)
}
