package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/oauth2"

	"pulse/internal/device"
	"pulse/internal/service"
	"pulse/internal/store"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Pull new records from the device-data API",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.ValidateDevice(); err != nil {
			return err
		}

		storedAuth, err := db.GetAuth()
		if errors.Is(err, store.ErrNoAuth) {
			return errors.New("no device authentication stored; save tokens with your vendor's pairing tool first")
		}
		if err != nil {
			return fmt.Errorf("reading auth: %w", err)
		}

		oauthCfg := &oauth2.Config{
			ClientID:     cfg.Device.ClientID,
			ClientSecret: cfg.Device.ClientSecret,
			Endpoint: oauth2.Endpoint{
				TokenURL: cfg.Device.BaseURL + "/oauth/token",
			},
		}
		token := &oauth2.Token{
			AccessToken:  storedAuth.AccessToken,
			RefreshToken: storedAuth.RefreshToken,
			Expiry:       storedAuth.ExpiresAt,
		}
		tokenSource := device.NewTokenSource(oauthCfg, token, func(newToken *oauth2.Token) error {
			return db.UpdateTokens(newToken.AccessToken, newToken.RefreshToken, newToken.Expiry)
		})

		client := device.NewClient(cfg.Device.BaseURL, tokenSource)
		svc := service.NewSyncService(client, db)

		fmt.Println("Syncing from device API...")
		result, err := svc.SyncAll(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("Fetched %d heart-rate samples, %d sleep nights, %d activity minutes\n",
			result.SamplesFetched, result.NightsFetched, result.MinutesFetched)
		return nil
	},
}
