// Command bgidemo draws every bgi primitive into an image file.
package main

import (
	"flag"
	"log"
	"log/slog"
	"math"
	"os"

	"github.com/gogpu/bgi"
)

func main() {
	var (
		width   = flag.Int("width", 800, "image width")
		height  = flag.Int("height", 600, "image height")
		config  = flag.String("config", "", "optional .toml or .yaml canvas config")
		output  = flag.String("output", "demo.png", "output file (.png, .jpg, .bmp, .tif)")
		verbose = flag.Bool("v", false, "debug logging to stderr")
	)
	flag.Parse()

	if *verbose {
		bgi.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	cfg := bgi.Config{Width: *width, Height: *height}
	if *config != "" {
		var err error
		if cfg, err = bgi.LoadConfig(*config); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		if cfg.Width == 0 || cfg.Height == 0 {
			cfg.Width, cfg.Height = *width, *height
		}
	}

	cv, err := bgi.NewCanvasFromConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to create canvas: %v", err)
	}
	defer func() { _ = cv.Close() }()

	for _, draw := range []func(*bgi.Canvas) error{
		drawShapesDemo,
		drawArcDemo,
		drawTransformDemo,
		drawFloodDemo,
		drawTextDemo,
		drawSpriteDemo,
	} {
		if err := draw(cv); err != nil {
			log.Fatalf("Failed to draw: %v", err)
		}
	}

	if err := cv.SaveFile(*output, true); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Demo saved to %s (%dx%d)\n", *output, cv.Width(), cv.Height())
}

func drawShapesDemo(cv *bgi.Canvas) error {
	cv.SetColor(bgi.Blue)
	cv.SetFillColor(bgi.LightCyan)
	if err := cv.DrawCircle(100, 100, 60); err != nil {
		return err
	}
	cv.SetFillColor(bgi.Yellow)
	if err := cv.DrawRoundedRect(200, 50, 330, 150, 15, 15); err != nil {
		return err
	}
	cv.SetLineStyle(bgi.LineDash)
	if err := cv.Rect(360, 50, 480, 150); err != nil {
		return err
	}
	cv.SetLineStyle(bgi.LineSolid)
	if err := cv.FillEllipse(560, 100, 60, 35); err != nil {
		return err
	}
	return cv.Bezier(40, 250, 120, 170, 200, 330, 280, 250)
}

func drawArcDemo(cv *bgi.Canvas) error {
	cv.SetFillColor(bgi.LightRed)
	if err := cv.DrawPie(380, 260, 30, 300, 60, 60); err != nil {
		return err
	}
	cv.SetFillColor(bgi.LightGreen)
	if err := cv.DrawChord(540, 260, 200, 340, 60, 60); err != nil {
		return err
	}
	return cv.Arc(680, 260, 0, 270, 50, 30)
}

func drawTransformDemo(cv *bgi.Canvas) error {
	for i := 0; i < 8; i++ {
		cv.Save()
		cv.Translate(120, 440)
		cv.Rotate(float64(i) * 45)
		cv.SetFillColor(bgi.HSL(float64(i)*45, 0.8, 0.6))
		if err := cv.FillRect(20, -10, 80, 10); err != nil {
			return err
		}
		if err := cv.Restore(); err != nil {
			return err
		}
	}
	return nil
}

func drawFloodDemo(cv *bgi.Canvas) error {
	const points = 5
	var coords []float64
	for i := 0; i < points*2; i++ {
		r := 60.0
		if i%2 == 1 {
			r = 25
		}
		a := float64(i)*math.Pi/points - math.Pi/2
		coords = append(coords, 320+r*math.Cos(a), 440+r*math.Sin(a))
	}
	cv.SetColor(bgi.Black)
	if err := cv.Polygon(coords...); err != nil {
		return err
	}
	cv.SetFillColor(bgi.Magenta)
	return cv.FloodFill(320, 440, bgi.Black)
}

func drawTextDemo(cv *bgi.Canvas) error {
	cv.SetColor(bgi.DarkGray)
	if err := cv.DrawText(420, 380, "Hello,", "BGI", 2026); err != nil {
		return err
	}
	return cv.DrawRectText(420, 420, 760, 560,
		"Text can be wrapped inside a rectangle and aligned on both axes.",
		bgi.AlignCenter|bgi.TextWordWrap)
}

func drawSpriteDemo(cv *bgi.Canvas) error {
	sprite, err := bgi.NewCanvas(40, 40, bgi.WithFillColor(bgi.Brown))
	if err != nil {
		return err
	}
	defer func() { _ = sprite.Close() }()
	if err := sprite.DrawCircle(20, 20, 15); err != nil {
		return err
	}
	for i := 0; i < 4; i++ {
		opts := &bgi.DrawImageOptions{ForegroundOnly: true, Width: 40 + 10*float64(i)}
		if err := cv.DrawImage(600+float64(i)*10, 360+float64(i)*40, sprite, opts); err != nil {
			return err
		}
	}
	return nil
}
