package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/honeycarbs/jobmatch/internal/api"
	"github.com/honeycarbs/jobmatch/internal/domain"
	"github.com/honeycarbs/jobmatch/internal/server"
)

var searchCmd = &cobra.Command{
	Use:   "search [profile.json]",
	Short: "Run one search for a profile read from a file or stdin and print the ranked result as JSON",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := cmd.InOrStdin()
		if len(args) == 1 && args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()
			in = f
		}
		return search(cmd.Context(), in, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

// readProfile accepts either a bare profile or a {"profile": ...} request body
func readProfile(r io.Reader) (domain.CandidateProfile, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return domain.CandidateProfile{}, fmt.Errorf("read profile: %w", err)
	}

	var req api.SearchRequest
	if err := json.Unmarshal(raw, &req); err == nil && req.Profile != nil {
		return *req.Profile, nil
	}

	var profile domain.CandidateProfile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return profile, fmt.Errorf("decode profile: %w", err)
	}
	return profile, nil
}

func search(ctx context.Context, in io.Reader, out io.Writer) error {
	profile, err := readProfile(in)
	if err != nil {
		return err
	}
	if fields := api.Validate(api.SearchRequest{Profile: &profile}); len(fields) > 0 {
		return fmt.Errorf("invalid profile: %s %s", fields[0].Field, fields[0].Message)
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := newLogger(cfg)
	defer func() { _ = logger.Sync() }()

	res, err := server.InitializeResources(ctx, cfg, logger)
	if err != nil {
		return err
	}

	result, err := res.Aggregator.Search(ctx, profile)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(api.NewSearchResponse(result))
}
