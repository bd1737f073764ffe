package sysconfig

import (
	"context"

	"github.com/KarpelesLab/rest"
)

// RestSource fetches the nameserver list from a centrally managed JSON
// endpoint, the way KarpelesLab's own services distribute configuration,
// using the teacher's own REST client.
type RestSource struct {
	// Path is the API path passed to rest.Do, e.g. "Dns/Resolver:config".
	Path string
}

func NewRestSource(path string) *RestSource {
	return &RestSource{Path: path}
}

type restNameserversResponse struct {
	Nameservers []string `json:"nameservers"`
}

func (r *RestSource) Nameservers(ctx context.Context) ([]string, error) {
	var res restNameserversResponse
	if err := rest.Do(ctx, "GET", r.Path, nil, &res); err != nil {
		return nil, err
	}
	return res.Nameservers, nil
}
