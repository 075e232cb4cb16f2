package main

import (
	"os"

	"github.com/candidatos-info/runoff/election"
	"github.com/candidatos-info/runoff/server"
	"github.com/labstack/echo"
	"github.com/labstack/echo/middleware"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newServeCmd(params *electionParams) *cobra.Command {
	var port string
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve an election over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := params.build(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			srv := echo.New()
			srv.HideBanner = true
			basicAuthUserName := os.Getenv("USER_NAME")
			basicAuthPassword := os.Getenv("PASSWORD")
			if basicAuthUserName != "" && basicAuthPassword != "" {
				srv.Use(middleware.BasicAuth(func(username, password string, c echo.Context) (bool, error) {
					return (username == basicAuthUserName && password == basicAuthPassword), nil
				}))
			} else {
				log.Warn("USER_NAME or PASSWORD not set, serving without basic auth")
			}
			server.New(election.NewRunoff(e, params.maxRounds)).Register(srv)
			log.WithField("election", e.ID).Infof("server online at %s", port)
			return srv.Start(":" + port)
		},
	}
	serveCmd.Flags().StringVar(&port, "port", getenv("SERVER_PORT", "8080"), "port to listen on")
	return serveCmd
}
