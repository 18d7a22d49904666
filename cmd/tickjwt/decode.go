package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/tickjwt/pkg/async"
	"github.com/dmitrymomot/tickjwt/pkg/environment"
	"github.com/dmitrymomot/tickjwt/pkg/jwt"
	"github.com/dmitrymomot/tickjwt/pkg/logger"
	"github.com/dmitrymomot/tickjwt/pkg/scheduler"
	"github.com/dmitrymomot/tickjwt/pkg/verifier"
)

var (
	decodeKeyFile      string
	decodePreparedFile string
	decodeSigningInput string
	decodeBitsPerTick  int
)

var decodeCmd = &cobra.Command{
	Use:   "decode [token...]",
	Short: "Decode tokens and verify their RS256 signatures",
	Long:  "Decodes one or more compact JWTs and verifies each signature. Tokens are read from the arguments, or one per line from stdin when no arguments are given.",
	RunE:  runDecode,
}

func init() {
	decodeCmd.Flags().StringVar(&decodeKeyFile, "key", "", "PEM public key file (overrides TICKJWT_PUBLIC_KEY_FILE)")
	decodeCmd.Flags().StringVar(&decodePreparedFile, "prepared", "", "Prepared key YAML file (overrides TICKJWT_PREPARED_KEY_FILE)")
	decodeCmd.Flags().StringVar(&decodeSigningInput, "signing-input", "", "Signing input form: compact or normalized")
	decodeCmd.Flags().IntVar(&decodeBitsPerTick, "bits-per-tick", 0, "Exponent bits processed per scheduler tick")
	rootCmd.AddCommand(decodeCmd)
}

var errVerificationFailed = errors.New("one or more tokens failed verification")

func runDecode(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if decodeKeyFile != "" {
		cfg.PublicKeyFile, cfg.PreparedKeyFile = decodeKeyFile, ""
	}
	if decodePreparedFile != "" {
		cfg.PreparedKeyFile = decodePreparedFile
	}
	if decodeSigningInput != "" {
		cfg.SigningInput = decodeSigningInput
	}
	if decodeBitsPerTick > 0 {
		cfg.BitsPerTick = decodeBitsPerTick
	}

	tokens := args
	if len(tokens) == 0 {
		if tokens, err = readTokens(cmd.InOrStdin()); err != nil {
			return err
		}
	}
	if len(tokens) == 0 {
		return fmt.Errorf("no tokens given")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = environment.WithContext(ctx, environment.Parse(cfg.AppEnv))

	results, err := decodeTokens(ctx, cfg, tokens)
	if err != nil {
		return err
	}

	// Raw tokens are credentials; production output never echoes them.
	if !verbose || environment.IsProduction(ctx) {
		tokens = nil
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		if err := printResultsJSON(out, tokens, results); err != nil {
			return err
		}
	} else {
		printResults(out, tokens, results)
	}

	for _, res := range results {
		if !res.Success {
			return errVerificationFailed
		}
	}
	return nil
}

// decodeTokens runs every token through one decoder and waits for all of
// them, driving the scheduler until they finish or the timeout expires.
func decodeTokens(ctx context.Context, cfg Config, tokens []string) ([]jwt.Result, error) {
	log := cfg.logger()

	key, err := cfg.publicKey()
	if err != nil {
		return nil, err
	}
	opts, err := cfg.decoderOptions()
	if err != nil {
		return nil, err
	}
	opts = append(opts,
		jwt.WithLogger(log),
		jwt.WithVerifierOptions(verifier.WithBitsPerTick(cfg.BitsPerTick)),
	)

	sched := scheduler.New(scheduler.WithInterval(cfg.TickInterval), scheduler.WithLogger(log))
	dec, err := jwt.New(sched, opts...)
	if err != nil {
		return nil, err
	}
	if key != nil {
		if err := dec.SetPublicKey(key); err != nil {
			return nil, err
		}
	} else {
		log.Warn("no public key configured, signatures will not verify")
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	started := time.Now()
	futures := make([]*async.Future[jwt.Result], len(tokens))
	for i, token := range tokens {
		futures[i] = dec.Decode(ctx, token, nil).Wait()
	}

	go func() {
		if err := sched.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Debug("scheduler stopped", logger.Error(err))
		}
	}()

	type waited struct {
		results []jwt.Result
		err     error
	}
	done := make(chan waited, 1)
	go func() {
		results, err := async.WaitAll(futures...)
		done <- waited{results, err}
	}()

	select {
	case w := <-done:
		errs := make([]error, 0, len(w.results))
		for _, res := range w.results {
			errs = append(errs, res.Err)
		}
		log.Info("tokens decoded",
			slog.Int("count", len(w.results)),
			logger.Ticks(sched.Now()),
			logger.Duration(time.Since(started)),
			logger.Errors(errs...),
		)
		return w.results, w.err
	case <-ctx.Done():
		return nil, fmt.Errorf("decoding timed out after %s: %w", cfg.Timeout, ctx.Err())
	}
}

func readTokens(r io.Reader) ([]string, error) {
	var tokens []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			tokens = append(tokens, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading stdin: %w", err)
	}
	return tokens, nil
}
