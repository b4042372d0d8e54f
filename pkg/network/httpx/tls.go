package httpx

import "golang.org/x/crypto/acme/autocert"

type autoTLS struct {
	manager *autocert.Manager
}

func newAutoTLS(host string) *autoTLS {
	tls := autoTLS{
		manager: &autocert.Manager{
			Prompt: autocert.AcceptTOS,
			Cache:  autocert.DirCache(".cache/acme"),
		},
	}
	if host != "" {
		tls.manager.HostPolicy = autocert.HostWhitelist(host)
	}
	return &tls
}
