package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"
	"time"

	"payment-webhook-bridge/internal/service"

	"github.com/spf13/cobra"
)

func (c *cli) adminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Operator credentials",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "hash-key [api-key]",
		Short: "Hash an operator API key for admin.key_hash",
		Long: `Hash an operator API key with argon2id. The key is read from the
argument, or from the first line of stdin when no argument is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := readSecret(cmd, args)
			if err != nil {
				return err
			}
			hash, err := service.NewArgon2HashService().Hash(key)
			if err != nil {
				return fmt.Errorf("hash key: %w", err)
			}
			printf(cmd.OutOrStdout(), "%s\n", hash)
			return nil
		},
	})

	var subject string
	var ttl time.Duration
	token := &cobra.Command{
		Use:   "token",
		Short: "Issue an admin token signed with jwt.secret",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if c.cfg.JWT.Secret == "" {
				return errors.New("jwt.secret is not configured")
			}
			expiry := c.cfg.JWT.Expiry
			if ttl > 0 {
				expiry = ttl
			}
			tok, exp, err := service.NewJWTTokenService(c.cfg.JWT.Secret, expiry, c.cfg.JWT.Issuer).Generate(subject)
			if err != nil {
				return fmt.Errorf("generate token: %w", err)
			}
			printf(cmd.OutOrStdout(), "%s\n", tok)
			printf(cmd.ErrOrStderr(), "expires %s\n", exp.UTC().Format(time.RFC3339))
			return nil
		},
	}
	token.Flags().StringVar(&subject, "subject", "admin", "token subject recorded in audit logs")
	token.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (default jwt.expiry)")
	cmd.AddCommand(token)

	return cmd
}

func readSecret(cmd *cobra.Command, args []string) (string, error) {
	var key string
	if len(args) == 1 {
		key = args[0]
	} else {
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && line == "" {
			return "", errors.New("no api key given")
		}
		key = line
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", errors.New("api key is empty")
	}
	return key, nil
}
