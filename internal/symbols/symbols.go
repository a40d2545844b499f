package symbols

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"
)

// DefaultPortfolio is used when no portfolio file exists.
var DefaultPortfolio = []string{
	"AAPL", "MSFT", "GOOGL", "AMZN", "TSLA",
	"NVDA", "META", "NFLX", "JPM", "V",
}

// parseFile reads one uppercase ticker per line, skipping blank lines and
// lines starting with '#'.
func parseFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var syms []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		syms = append(syms, strings.ToUpper(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return syms, nil
}

// LoadPortfolio reads the portfolio list, falling back to the built-in
// default list when the file does not exist.
func LoadPortfolio(path string) ([]string, error) {
	syms, err := parseFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("[INFO] %s not found, using default portfolio (%d symbols)", path, len(DefaultPortfolio))
			return append([]string(nil), DefaultPortfolio...), nil
		}
		return nil, err
	}
	log.Printf("[INFO] loaded %d symbols from %s", len(syms), path)
	return syms, nil
}

// LoadScanList reads the broad-market scan list, excluding symbols already
// in the portfolio. A missing file skips the market scan entirely and is
// not an error.
func LoadScanList(path string, exclude []string) ([]string, error) {
	syms, err := parseFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("[INFO] %s not found, skipping market scan", path)
			return nil, nil
		}
		return nil, err
	}

	inPortfolio := make(map[string]bool, len(exclude))
	for _, s := range exclude {
		inPortfolio[s] = true
	}
	filtered := syms[:0]
	for _, s := range syms {
		if !inPortfolio[s] {
			filtered = append(filtered, s)
		}
	}
	if excluded := len(syms) - len(filtered); excluded > 0 {
		log.Printf("[INFO] scan list: %d symbols, %d already in portfolio excluded", len(syms), excluded)
	}
	return filtered, nil
}
