package automatic

import (
	"bufio"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"os"
	"strings"

	"lukechampine.com/frand"
)

// GenerateSeeds creates n random 32-byte seeds for deterministic
// self-play runs.
func GenerateSeeds(n int) [][32]byte {
	seeds := make([][32]byte, n)
	for i := 0; i < n; i++ {
		frand.Read(seeds[i][:])
	}
	return seeds
}

// WorkerSeed derives the agent seed for one worker from a seed list,
// reusing seeds cyclically when there are more workers than seeds.
func WorkerSeed(seeds [][32]byte, worker int) uint64 {
	s := seeds[worker%len(seeds)]
	return binary.LittleEndian.Uint64(s[:8]) + uint64(worker/len(seeds))
}

// SaveSeeds writes seeds to a file in base64 format (one per line).
func SaveSeeds(seeds [][32]byte, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create seed file: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	defer writer.Flush()

	if _, err = writer.WriteString("# Deterministic self-play seeds (base64 URL-safe encoded, 32 bytes each)\n"); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, seed := range seeds {
		encoded := base64.RawURLEncoding.EncodeToString(seed[:])
		if _, err = writer.WriteString(encoded + "\n"); err != nil {
			return fmt.Errorf("failed to write seed %d: %w", i, err)
		}
	}
	return nil
}

// LoadSeeds reads seeds from a file in base64 format.
func LoadSeeds(path string) ([][32]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer file.Close()

	var seeds [][32]byte
	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		decoded, err := base64.RawURLEncoding.DecodeString(line)
		if err != nil {
			return nil, fmt.Errorf("failed to decode seed at line %d: %w", lineNum, err)
		}
		if len(decoded) != 32 {
			return nil, fmt.Errorf("invalid seed length at line %d: got %d bytes, expected 32", lineNum, len(decoded))
		}
		var seed [32]byte
		copy(seed[:], decoded)
		seeds = append(seeds, seed)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading seed file: %w", err)
	}
	if len(seeds) == 0 {
		return nil, fmt.Errorf("seed file %s holds no seeds", path)
	}
	return seeds, nil
}
