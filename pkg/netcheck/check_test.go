package netcheck

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/moorhenlabs/moorhen-doctor/pkg/check"
)

type mapGetter map[string]string

func (m mapGetter) LookupEnv(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// urlClient answers per-URL with a status code or an error.
type urlClient struct {
	statuses map[string]int
	errs     map[string]error
}

func (c *urlClient) Do(req *http.Request) (*http.Response, error) {
	url := req.URL.String()
	if err, ok := c.errs[url]; ok {
		return nil, err
	}
	status, ok := c.statuses[url]
	if !ok {
		status = 200
	}
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader("")),
	}, nil
}

func TestRun_AnyHTTPResponseIsReachable(t *testing.T) {
	probe := &Probe{
		Client: &urlClient{statuses: map[string]int{
			"https://a.example": 200,
			"https://b.example": 403,
			"https://c.example": 500,
		}},
		Getter: mapGetter{},
		Endpoints: []Endpoint{
			{Name: "A", URL: "https://a.example"},
			{Name: "B", URL: "https://b.example"},
			{Name: "C", URL: "https://c.example"},
		},
	}

	outcomes := probe.Run(&check.Env{})

	// three endpoints plus the proxy report
	assert.Len(t, outcomes, 4)
	for _, o := range outcomes[:3] {
		assert.Equal(t, check.Pass, o.Severity, "%s should be reachable", o.Name)
	}
}

func TestRun_ConnectionFailureIsFail(t *testing.T) {
	probe := &Probe{
		Client: &urlClient{errs: map[string]error{
			"https://down.example": errors.New("dial tcp: no route to host"),
		}},
		Getter: mapGetter{},
		Endpoints: []Endpoint{
			{Name: "Down", URL: "https://down.example"},
			{Name: "Up", URL: "https://up.example"},
		},
	}

	outcomes := probe.Run(&check.Env{})

	assert.Equal(t, check.Fail, outcomes[0].Severity)
	assert.Contains(t, outcomes[0].Detail, "no route to host")
	assert.Equal(t, check.Pass, outcomes[1].Severity)
}

func TestRun_OutcomeOrderMatchesEndpointOrder(t *testing.T) {
	endpoints := []Endpoint{
		{Name: "First", URL: "https://1.example"},
		{Name: "Second", URL: "https://2.example"},
		{Name: "Third", URL: "https://3.example"},
		{Name: "Fourth", URL: "https://4.example"},
		{Name: "Fifth", URL: "https://5.example"},
	}
	probe := &Probe{
		Client:    &urlClient{},
		Getter:    mapGetter{},
		Endpoints: endpoints,
	}

	outcomes := probe.Run(&check.Env{})

	for i, ep := range endpoints {
		assert.Equal(t, ep.Name, outcomes[i].Name)
	}
}

func TestRun_ProxyDetection(t *testing.T) {
	noProxy := &Probe{Client: &urlClient{}, Getter: mapGetter{},
		Endpoints: []Endpoint{{Name: "A", URL: "https://a.example"}}}
	withProxy := &Probe{Client: &urlClient{},
		Getter:    mapGetter{"HTTPS_PROXY": "http://proxy.corp:3128"},
		Endpoints: []Endpoint{{Name: "A", URL: "https://a.example"}}}

	plain := noProxy.Run(&check.Env{})
	proxied := withProxy.Run(&check.Env{})

	assert.Contains(t, plain[len(plain)-1].Message, "no system proxy")

	last := proxied[len(proxied)-1]
	assert.Equal(t, check.Pass, last.Severity)
	assert.Contains(t, last.Detail, "HTTPS_PROXY=http://proxy.corp:3128")
}

func TestDefaultEndpoints(t *testing.T) {
	names := make(map[string]bool)
	for _, ep := range DefaultEndpoints {
		names[ep.Name] = true
		assert.True(t, strings.HasPrefix(ep.URL, "https://"))
	}
	assert.True(t, names["npm Registry"])
}
