package commands

import (
	"context"
	"fmt"
	"os"

	"aurion-client/lib/configutil"
	"aurion-client/lib/restyutil"
	"aurion-client/lib/scrapers/aurion"
	"aurion-client/lib/serviceutil"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "aurion-cli",
	Short: "aurion-cli scrapes plannings out of an Aurion portal.",
}

var debugHttp *string

func init() {
	debugHttp = rootCmd.PersistentFlags().String(
		"debug-http", "",
		"Directory to dump every http exchange into, for debugging.",
	)
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type Config struct {
	ServiceUrl       string `json:"service_url"`
	Username         string `json:"username"`
	Password         string `json:"password"`
	LanguageCode     int    `json:"language_code"`
	SchoolingId      string `json:"schooling_id"`
	UserPlanningId   string `json:"user_planning_id"`
	GroupsPlanningId string `json:"groups_planning_id"`
}

func createClient(ctx context.Context) *aurion.Client {
	cfg, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil {
		serviceutil.Fatal("failed to read config", err)
	}

	client, err := aurion.NewClient(aurion.ClientOptions{
		ServiceUrl:       cfg.ServiceUrl,
		LanguageCode:     cfg.LanguageCode,
		SchoolingId:      cfg.SchoolingId,
		UserPlanningId:   cfg.UserPlanningId,
		GroupsPlanningId: cfg.GroupsPlanningId,
	})
	if err != nil {
		serviceutil.Fatal("failed to initialize client", err)
	}
	if *debugHttp != "" {
		client.SetRestyInstrumentOutput(restyutil.NewFilesystemOutput(*debugHttp))
	}

	err = client.Login(ctx, cfg.Username, cfg.Password)
	if err != nil {
		serviceutil.Fatal("failed to login", err)
	}
	return client
}
