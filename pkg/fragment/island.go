package fragment

import (
	"encoding/json"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/vango-dev/isoview/internal/errors"
)

// IslandGlobal is the client-side variable data islands are assigned to.
const IslandGlobal = "dataIslands"

// IslandSource returns the script body that registers data under state.
// Both the state name and the data are JSON encoded with HTML escaping, so
// the result is safe inside a script element.
func IslandSource(state string, data any) (string, error) {
	name, err := json.Marshal(state)
	if err != nil {
		return "", errors.New("E204").WithDetailf("state %q", state).Wrap(err)
	}
	payload, err := json.Marshal(data)
	if err != nil {
		return "", errors.New("E204").WithDetailf("state %q", state).Wrap(err)
	}
	return "var " + IslandGlobal + " = " + IslandGlobal + " || {}; " +
		IslandGlobal + "[" + string(name) + "] = " + string(payload) + ";", nil
}

// IslandScript returns the complete inline script element for a data island.
func IslandScript(state string, data any) (string, error) {
	src, err := IslandSource(state, data)
	if err != nil {
		return "", err
	}
	return "<script>" + src + "</script>", nil
}

func islandNode(state string, data any) (*html.Node, error) {
	src, err := IslandSource(state, data)
	if err != nil {
		return nil, err
	}
	script := &html.Node{Type: html.ElementNode, Data: "script", DataAtom: atom.Script}
	script.AppendChild(&html.Node{Type: html.TextNode, Data: src})
	return script, nil
}
