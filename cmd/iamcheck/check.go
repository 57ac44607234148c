// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vaultgate/iampolicy/internal/logging"
	"github.com/vaultgate/iampolicy/internal/policy"
	"github.com/vaultgate/iampolicy/internal/policy/model"
)

var (
	tracer  = otel.Tracer("iamcheck/cmd")
	metrics = policy.NewMetrics(prometheus.DefaultRegisterer)
)

// NewCheckCmd creates the check subcommand: the CLI's one real
// operation, evaluating a policy document against a single request.
func NewCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Evaluate a policy document against a request",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd.Flags())
			if err != nil {
				return &loadError{err}
			}
			return runCheck(cmd, cfg)
		},
	}

	cmd.Flags().String("policy", "", "path to the JSON policy document")
	cmd.Flags().String("context", "", "path to the JSON context document")
	cmd.Flags().String("action", "", "action to evaluate, e.g. route53:GetChange")
	cmd.Flags().String("resource", "", "resource ARN to evaluate")
	cmd.Flags().String("principal-aws", "", "AWS principal, an ARN or bare account number")
	cmd.Flags().String("principal-federated", "", "federated principal identifier")
	cmd.Flags().String("principal-service", "", "service principal identifier")
	cmd.Flags().String("principal-canonical-user", "", "canonical user principal identifier")
	cmd.Flags().Bool("json", false, "emit the decision as JSON")

	for _, required := range []string{"policy", "action", "resource"} {
		_ = cmd.MarkFlagRequired(required)
	}

	return cmd
}

// runCheck loads the policy and context, resolves the optional principal
// flag, evaluates the request, and prints the decision.
func runCheck(cmd *cobra.Command, cfg checkConfig) error {
	logging.SetDefault("iamcheck", version, "text")
	evalID := policy.NewEvalID()

	spanCtx, span := tracer.Start(cmd.Context(), "iamcheck.check",
		trace.WithAttributes(
			attribute.String("eval_id", evalID),
			attribute.String("action", cfg.Action),
			attribute.String("resource", cfg.Resource),
		),
	)
	var err error
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	pol, err := loadPolicy(cfg.PolicyPath)
	if err != nil {
		return &loadError{err}
	}
	ctx, err := loadContext(cfg.ContextPath)
	if err != nil {
		return &loadError{err}
	}

	action, err := model.ParseAction(cfg.Action)
	if err != nil {
		return &loadError{err}
	}
	resource, err := model.ParseARN(cfg.Resource)
	if err != nil {
		return &loadError{err}
	}

	principal, havePrincipal, err := resolvePrincipal(cfg)
	if err != nil {
		return &loadError{err}
	}

	op := "check_action"
	if havePrincipal {
		op = "check"
	}
	result, err := policy.Track(metrics, op, func() (policy.CheckResult, error) {
		if havePrincipal {
			return pol.Check(ctx, principal, action, resource)
		}
		return pol.CheckAction(ctx, action, resource)
	})
	if err != nil {
		return &evalError{err}
	}

	span.SetAttributes(attribute.String("decision", result.String()))

	slog.InfoContext(spanCtx, "evaluated policy",
		"eval_id", evalID,
		"action", cfg.Action,
		"resource", cfg.Resource,
		"decision", result.String(),
	)

	if cfg.JSONOutput {
		cmd.Println(fmt.Sprintf(`{"decision":%q}`, result.String()))
	} else {
		cmd.Println(result.String())
	}
	return nil
}

// resolvePrincipal builds a model.Principal from at most one of the four
// --principal-* flags. Returns havePrincipal=false when none is set, so
// the caller falls back to CheckAction.
func resolvePrincipal(cfg checkConfig) (model.Principal, bool, error) {
	set := 0
	if cfg.PrincipalAWS != "" {
		set++
	}
	if cfg.PrincipalFederated != "" {
		set++
	}
	if cfg.PrincipalService != "" {
		set++
	}
	if cfg.PrincipalCanonicalUser != "" {
		set++
	}
	if set > 1 {
		return model.Principal{}, false, fmt.Errorf("at most one --principal-* flag may be set")
	}

	switch {
	case cfg.PrincipalAWS != "":
		arn, err := model.ParseARN(model.NormalizeAWSAccount(cfg.PrincipalAWS))
		if err != nil {
			return model.Principal{}, false, err
		}
		return model.NewAWSPrincipal(arn), true, nil
	case cfg.PrincipalFederated != "":
		return model.NewFederatedPrincipal(cfg.PrincipalFederated), true, nil
	case cfg.PrincipalService != "":
		return model.NewServicePrincipal(cfg.PrincipalService), true, nil
	case cfg.PrincipalCanonicalUser != "":
		return model.NewCanonicalUserPrincipal(cfg.PrincipalCanonicalUser), true, nil
	default:
		return model.Principal{}, false, nil
	}
}
