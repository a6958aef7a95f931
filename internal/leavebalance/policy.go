package leavebalance

import (
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

const (
	ModeAllow  = "allow"
	ModeReject = "reject"
)

type LeaveTypePolicy struct {
	Code             string  `yaml:"code"`
	DefaultAllowance float64 `yaml:"default_allowance"`
}

// Policy is the organization's leave configuration: which leave types exist,
// the allowance a fresh balance row starts with, and whether requests may
// drive a balance below zero.
type Policy struct {
	InsufficientBalance string            `yaml:"insufficient_balance"`
	LeaveTypes          []LeaveTypePolicy `yaml:"leave_types"`
}

func DefaultPolicy() Policy {
	return Policy{
		InsufficientBalance: ModeAllow,
		LeaveTypes: []LeaveTypePolicy{
			{Code: "CASUAL", DefaultAllowance: 12},
			{Code: "SICK", DefaultAllowance: 12},
			{Code: "ANNUAL", DefaultAllowance: 21},
			{Code: "MATERNITY", DefaultAllowance: 90},
			{Code: "PATERNITY", DefaultAllowance: 10},
		},
	}
}

// LoadPolicy reads a YAML policy file. An empty path yields DefaultPolicy.
func LoadPolicy(path string) (Policy, error) {
	if path == "" {
		return DefaultPolicy(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Policy{}, fmt.Errorf("read leave policy: %w", err)
	}
	return ParsePolicy(data)
}

func ParsePolicy(data []byte) (Policy, error) {
	var p Policy
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Policy{}, fmt.Errorf("parse leave policy: %w", err)
	}
	p = p.normalize()
	if err := p.Validate(); err != nil {
		return Policy{}, err
	}
	return p, nil
}

func (p Policy) normalize() Policy {
	p.InsufficientBalance = strings.ToLower(strings.TrimSpace(p.InsufficientBalance))
	if p.InsufficientBalance == "" {
		p.InsufficientBalance = ModeAllow
	}
	types := make([]LeaveTypePolicy, len(p.LeaveTypes))
	for i, lt := range p.LeaveTypes {
		lt.Code = strings.ToUpper(strings.TrimSpace(lt.Code))
		types[i] = lt
	}
	p.LeaveTypes = types
	return p
}

func (p Policy) Validate() error {
	if p.InsufficientBalance != ModeAllow && p.InsufficientBalance != ModeReject {
		return fmt.Errorf("leave policy: insufficient_balance must be %s or %s", ModeAllow, ModeReject)
	}
	if len(p.LeaveTypes) == 0 {
		return fmt.Errorf("leave policy: at least one leave type is required")
	}
	seen := make(map[string]bool, len(p.LeaveTypes))
	for _, lt := range p.LeaveTypes {
		if lt.Code == "" {
			return fmt.Errorf("leave policy: leave type code is required")
		}
		if seen[lt.Code] {
			return fmt.Errorf("leave policy: duplicate leave type %s", lt.Code)
		}
		if lt.DefaultAllowance < 0 {
			return fmt.Errorf("leave policy: %s default_allowance must not be negative", lt.Code)
		}
		seen[lt.Code] = true
	}
	return nil
}

// WithMode overrides the insufficient-balance mode; an empty mode keeps the
// current one.
func (p Policy) WithMode(mode string) Policy {
	if mode != "" {
		p.InsufficientBalance = strings.ToLower(mode)
	}
	return p
}

func (p Policy) RejectsInsufficient() bool {
	return p.InsufficientBalance == ModeReject
}

func (p Policy) Defines(leaveType string) bool {
	_, ok := p.Allowance(leaveType)
	return ok
}

func (p Policy) Allowance(leaveType string) (decimal.Decimal, bool) {
	for _, lt := range p.LeaveTypes {
		if lt.Code == leaveType {
			return decimal.NewFromFloat(lt.DefaultAllowance), true
		}
	}
	return decimal.Zero, false
}

func (p Policy) Codes() []string {
	codes := make([]string, 0, len(p.LeaveTypes))
	for _, lt := range p.LeaveTypes {
		codes = append(codes, lt.Code)
	}
	return codes
}
