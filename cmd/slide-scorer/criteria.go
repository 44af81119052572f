// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/slide-scorer/internal/report"
	"github.com/pdiddy/slide-scorer/internal/score"
)

var criteriaCmd = &cobra.Command{
	Use:   "criteria",
	Short: "List the checklist criteria and their active weights",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pairs, _ := cmd.Flags().GetStringArray("weight")
		overrides, err := parseWeights(pairs)
		if err != nil {
			return err
		}
		criteria, err := score.New(cfg.Scoring, logger).Criteria(mergeWeights(cfg.Scoring.Weights, overrides))
		if err != nil {
			return err
		}
		report.PrintCriteria(cmd.OutOrStdout(), criteria)
		return nil
	},
}

func init() {
	criteriaCmd.Flags().StringArray("weight", nil, "override a criterion weight, e.g. --weight brevity=0.5 (repeatable)")
	rootCmd.AddCommand(criteriaCmd)
}
