package config

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/snodectl/snodectl/internal/model"
	snoderrors "github.com/snodectl/snodectl/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	semverPattern   = regexp.MustCompile(`^\d+\.\d+(?:\.\d+)?(?:-[0-9A-Za-z-.]+)?$`)
	nodeNamePattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)
	hostlistPattern = regexp.MustCompile(`^[a-zA-Z0-9._\[\],-]+$`)
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("semver", func(fl validator.FieldLevel) bool {
			return semverPattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("node_name", func(fl validator.FieldLevel) bool {
			return nodeNamePattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("hostlist", func(fl validator.FieldLevel) bool {
			return hostlistPattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("state_token", func(fl validator.FieldLevel) bool {
			_, err := model.ParseStateToken(fl.Field().String())
			return err == nil
		})

		validateInst = v
	})

	return validateInst
}

// DesiredFromArgs resolves the raw front-end state and reason arguments into
// a typed desired state. An empty state means the run is read-only and nil is
// returned. Token membership is checked before the reason requirement so a
// bogus token is always the first error reported.
func DesiredFromArgs(state string, reason *string) (*model.DesiredState, error) {
	if strings.TrimSpace(state) == "" {
		return nil, nil
	}

	token, err := model.ParseStateToken(state)
	if err != nil {
		return nil, snoderrors.NewValidationError("new_state", err.Error(), err)
	}

	if token.RequiresReason() && reason == nil {
		return nil, snoderrors.NewValidationError("new_state_reason",
			fmt.Sprintf("state %s requires new_state_reason to be set", token), nil)
	}

	return &model.DesiredState{State: token, Reason: reason}, nil
}

// ValidateRequest performs schema and cross-field validation on a compiled
// request. It assumes hostlists are already expanded into plain node names.
func ValidateRequest(req *Request) error {
	if req == nil {
		return snoderrors.NewValidationError("request", "request is nil", nil)
	}

	if req.Desired != nil {
		if _, err := model.ParseStateToken(string(req.Desired.State)); err != nil {
			return snoderrors.NewValidationError("new_state", err.Error(), err)
		}
		if req.Desired.State.RequiresReason() && req.Desired.Reason == nil {
			return snoderrors.NewValidationError("new_state_reason",
				fmt.Sprintf("state %s requires new_state_reason to be set", req.Desired.State), nil)
		}
	}

	if err := validatorInstance().Struct(req); err != nil {
		return convertValidationError(err)
	}

	seen := make(map[string]struct{}, len(req.Nodes))
	for i, node := range req.Nodes {
		if _, dup := seen[node]; dup {
			return snoderrors.NewValidationError(fmt.Sprintf("nodes[%d]", i),
				fmt.Sprintf("duplicate node %q", node), nil)
		}
		seen[node] = struct{}{}
	}

	return nil
}

// ValidateBatch performs schema and per-target validation on a batch document.
func ValidateBatch(batch *Batch) error {
	if batch == nil {
		return snoderrors.NewValidationError("batch", "batch document is nil", nil)
	}

	if err := validatorInstance().Struct(batch); err != nil {
		return convertValidationError(err)
	}

	for i, target := range batch.Targets {
		token, err := model.ParseStateToken(target.State)
		if err != nil {
			return snoderrors.NewValidationError(fieldForTarget(i, "state"), err.Error(), err)
		}

		if token.RequiresReason() && strings.TrimSpace(target.Reason) == "" {
			return snoderrors.NewValidationError(fieldForTarget(i, "reason"),
				fmt.Sprintf("state %s requires a reason", token), nil)
		}
	}

	return nil
}

func convertValidationError(err error) error {
	if err == nil {
		return nil
	}

	if ves, ok := err.(validator.ValidationErrors); ok {
		ve := ves[0]
		field := yamlishFieldName(ve)
		msg := fmt.Sprintf("%s failed validation for tag '%s'", field, ve.Tag())
		return snoderrors.NewValidationError(field, msg, err)
	}

	return snoderrors.NewValidationError("config", err.Error(), err)
}

func yamlishFieldName(fe validator.FieldError) string {
	ns := fe.StructNamespace()
	parts := strings.Split(ns, ".")
	var lowered []string
	for _, part := range parts {
		lowered = append(lowered, strings.ToLower(part))
	}
	return strings.Join(lowered, ".")
}

func fieldForTarget(index int, field string) string {
	return fmt.Sprintf("targets[%d].%s", index, field)
}
