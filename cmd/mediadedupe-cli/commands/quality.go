package commands

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/HaiderBassem/mediadedupe/internal/quality"
	"github.com/urfave/cli/v2"
)

// QualityCommand computes the diagnostic sharpness/exposure score of a
// single still image.
func QualityCommand(c *cli.Context) error {
	path := c.String("image")

	file, err := os.Open(path)
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to open image: %v", err), 1)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to decode image: %v", err), 1)
	}

	analyzer := quality.NewAnalyzer(quality.DefaultConfig())
	result, err := analyzer.Analyze(img)
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to analyze image: %v", err), 1)
	}

	fmt.Printf("Quality analysis for %s:\n", path)
	fmt.Printf("  sharpness:   %.2f\n", result.Sharpness)
	fmt.Printf("  exposure:    %.2f\n", result.Exposure)
	fmt.Printf("  final score: %.1f/100\n", result.FinalScore)

	if analyzer.IsBlurry(result) {
		fmt.Println("  note: image is blurry")
	}
	if analyzer.IsOverexposed(result) {
		fmt.Println("  note: image is overexposed")
	}
	if analyzer.IsUnderexposed(result) {
		fmt.Println("  note: image is underexposed")
	}

	return nil
}
