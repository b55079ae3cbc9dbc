package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/consensys/zkcalc"
	"github.com/consensys/zkcalc/calculator"
)

var rootCmd = &cobra.Command{
	Use:   `zkcalc ["a <op> b"]`,
	Short: "prove a calculation without revealing its operands",
	Long: `zkcalc proves knowledge of two private operands a and b such that
a <op> b equals a public result, for <op> one of +, - and *.

With no argument it reads one calculation per line from stdin. Quote
multiplications to keep the shell from expanding *:

  zkcalc "6 * 7"`,
	Args:    cobra.ArbitraryArgs,
	Run:     cmdCalc,
	Version: zkcalc.Version.String(),
}

var (
	fK       uint
	fProve   bool
	fVerbose bool
)

func init() {
	rootCmd.PersistentFlags().UintVar(&fK, "k", 4, "circuit size parameter, the constraint table holds 2**k rows")
	rootCmd.PersistentFlags().BoolVar(&fProve, "prove", false, "run a real groth16 proving cycle in addition to the mock prover")
	rootCmd.PersistentFlags().BoolVar(&fVerbose, "verbose", false, "enable debug logging")
}

func cmdCalc(cmd *cobra.Command, args []string) {
	if fVerbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	opts := []calculator.Option{calculator.WithK(fK)}
	if fProve {
		opts = append(opts, calculator.WithGroth16())
	}
	calc := calculator.New(opts...)

	if len(args) == 0 {
		if err := calc.Run(os.Stdin, os.Stdout); err != nil {
			fmt.Println("error:", err)
			os.Exit(-1)
		}
		return
	}

	op, err := calculator.Parse(strings.Join(args, " "))
	if err != nil {
		fmt.Println("error:", err)
		os.Exit(-1)
	}
	res, err := calc.Eval(op)
	if err != nil {
		fmt.Println("error:", err)
		os.Exit(-1)
	}
	fmt.Printf("proof generation successful!\nresult: %s\n", res.String())
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(-1)
	}
}
