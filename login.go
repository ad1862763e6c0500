package main

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/yhkl-dev/navistream/config"
	"github.com/yhkl-dev/navistream/domain"
	"github.com/yhkl-dev/navistream/library"
	"github.com/yhkl-dev/navistream/ui"
)

type credentialPrompt interface {
	Ask(username string) (ui.Credentials, error)
}

// authenticator logs in, prompting again after rejected credentials.
type authenticator struct {
	library  library.Library
	server   config.ServerConfig
	deviceID string
	prompt   credentialPrompt
	// configured credentials are tried once, before any prompt
	triedConfig bool
}

func newAuthenticator(lib library.Library, server config.ServerConfig, deviceID string, prompt credentialPrompt) *authenticator {
	return &authenticator{library: lib, server: server, deviceID: deviceID, prompt: prompt}
}

// Login tries up to server.login_attempts credentials. Errors other than
// rejected credentials end the attempt immediately.
func (a *authenticator) Login(ctx context.Context) error {
	for attempt := 1; attempt <= a.server.LoginAttempts; attempt++ {
		creds, err := a.credentials()
		if err != nil {
			return err
		}
		err = a.library.Login(ctx, creds.Username, creds.Password, a.deviceID)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrAuthentication) {
			return err
		}
		fmt.Println("Login failed.")
	}
	return errors.Wrapf(domain.ErrAuthentication, "giving up after %d attempts", a.server.LoginAttempts)
}

func (a *authenticator) credentials() (ui.Credentials, error) {
	if !a.triedConfig && a.server.Username != "" && a.server.Password != "" {
		a.triedConfig = true
		return ui.Credentials{Username: a.server.Username, Password: a.server.Password}, nil
	}
	a.triedConfig = true
	return a.prompt.Ask(a.server.Username)
}
