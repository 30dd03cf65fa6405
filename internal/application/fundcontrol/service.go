package fundcontrol

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/openfms/backend/internal/domain/fundcontrol"
	"github.com/openfms/backend/internal/domain/shared"
)

// Service manages the funding authority tree and exposes the advisory
// authority check.
type Service struct {
	repo      fundcontrol.Repository
	validator *fundcontrol.Validator
	logger    *zap.Logger
}

// NewService creates a new fund control Service
func NewService(repo fundcontrol.Repository, validator *fundcontrol.Validator, logger *zap.Logger) *Service {
	return &Service{
		repo:      repo,
		validator: validator,
		logger:    logger,
	}
}

// NodeSpec is one node of an authority tree to install
type NodeSpec struct {
	Name           string          `json:"name"`
	Code           string          `json:"code"`
	Level          string          `json:"level"`
	TotalAuthority decimal.Decimal `json:"total_authority"`
	Children       []NodeSpec      `json:"children,omitempty"`
}

// InstallTree replaces the funding authority tree with the given
// hierarchy. Obligated balances reset to zero; installation is a fiscal
// year start action, not a rollover.
func (s *Service) InstallTree(ctx context.Context, rootSpec NodeSpec) (*fundcontrol.Node, error) {
	root, err := buildNode(rootSpec)
	if err != nil {
		return nil, err
	}
	if root.Level != fundcontrol.LevelAppropriation {
		return nil, shared.NewDomainError("INVALID_INPUT",
			fmt.Sprintf("Tree root must be an appropriation, got %s", root.Level))
	}
	if err := s.repo.SaveTree(ctx, root); err != nil {
		return nil, fmt.Errorf("failed to save fund tree: %w", err)
	}

	count := 0
	root.Walk(func(*fundcontrol.Node) { count++ })
	s.logger.Info("fund tree installed",
		zap.String("root_code", root.Code),
		zap.Int("nodes", count),
		zap.String("total_authority", root.TotalAuthority.String()))
	return root, nil
}

// GetTree returns the current authority tree
func (s *Service) GetTree(ctx context.Context) (*fundcontrol.Node, error) {
	root, err := s.repo.LoadTree(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load fund tree: %w", err)
	}
	if root == nil {
		return nil, shared.ErrNotFound
	}
	return root, nil
}

// CheckAuthority runs the advisory ceiling check without recording anything
func (s *Service) CheckAuthority(ctx context.Context, check fundcontrol.AuthorityCheck) (*fundcontrol.ValidationResult, error) {
	root, err := s.repo.LoadTree(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load fund tree: %w", err)
	}
	result := s.validator.Validate(check, root)
	return &result, nil
}

// buildNode converts a NodeSpec subtree into domain nodes
func buildNode(spec NodeSpec) (*fundcontrol.Node, error) {
	node, err := fundcontrol.NewNode(spec.Name, spec.Code, fundcontrol.Level(spec.Level), spec.TotalAuthority)
	if err != nil {
		return nil, err
	}
	for _, childSpec := range spec.Children {
		child, err := buildNode(childSpec)
		if err != nil {
			return nil, err
		}
		node.AddChild(child)
	}
	return node, nil
}
