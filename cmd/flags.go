package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// addFlagValidation wraps a flag's value so every Set goes through the
// validator first. Invalid values fail at parse time instead of surfacing
// later as a misconfigured server.
func addFlagValidation(cmd *cobra.Command, flagName string, validator func(string) error) {
	flag := cmd.Flags().Lookup(flagName)
	if flag == nil {
		flag = cmd.PersistentFlags().Lookup(flagName)
	}
	if flag == nil {
		return
	}

	originalSet := flag.Value.Set
	flag.Value = &validatingValue{
		Value:       flag.Value,
		validator:   validator,
		originalSet: originalSet,
	}
}

type validatingValue struct {
	pflag.Value
	validator   func(string) error
	originalSet func(string) error
}

func (v *validatingValue) Set(val string) error {
	if v.validator != nil {
		if err := v.validator(val); err != nil {
			return err
		}
	}
	return v.originalSet(val)
}
