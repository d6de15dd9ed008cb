package domain

import "strings"

// Topology is the deployment layout of an environment, kept in the order it was received.
type Topology []LoadBalancer

type LoadBalancer struct {
	Name      string
	Listeners []Listener
}

type Listener struct {
	Name  string
	Rules []Rule
}

type Rule struct {
	Name string
	Apps []string
}

// Render writes one entry per line, indenting each level with one more tab.
func (t Topology) Render() string {
	sb := &strings.Builder{}

	for _, lb := range t {
		writeLine(sb, 0, lb.Name)

		for _, listener := range lb.Listeners {
			writeLine(sb, 1, listener.Name)

			for _, rule := range listener.Rules {
				writeLine(sb, 2, rule.Name)

				for _, app := range rule.Apps {
					writeLine(sb, 3, app)
				}
			}
		}
	}

	return sb.String()
}

func writeLine(sb *strings.Builder, depth int, text string) {
	sb.WriteString(strings.Repeat("\t", depth))
	sb.WriteString(text)
	sb.WriteByte('\n')
}
