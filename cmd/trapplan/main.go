package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/logrusorgru/aurora"

	"github.com/trapplan/motionplan/geom"
	"github.com/trapplan/motionplan/internal/draw"
	"github.com/trapplan/motionplan/planner"
)

// Demo CLI: reads a scenario from stdin and prints the planned path.
//
// Input is newline-separated "x y" points, one polygon per blank-line
// separated block, for the obstacle field; followed by a line "VEHICLE" and
// its own point block (a single point means no footprint); followed by
// "START x y", "GOAL x y", and "BOUNDS minx miny maxx maxy" lines.
//
// Obstacles and the vehicle should be simple and wind counterclockwise;
// none of this is validated.
func main() {
	scenario, err := readScenario(os.Stdin)
	if err != nil {
		fmt.Println(aurora.Red(err.Error()))
		os.Exit(1)
	}

	p, err := planner.New(scenario.bounds, planner.DefaultConfig())
	if err != nil {
		fmt.Println(aurora.Red(err.Error()))
		os.Exit(1)
	}
	p.SetObstacles(scenario.obstacles)
	p.SetVehicle(scenario.vehicle)

	if err := p.Build(); err != nil {
		fmt.Println(aurora.Red(fmt.Sprintf("build failed: %v", err)))
		os.Exit(1)
	}
	fmt.Println(aurora.Green(fmt.Sprintf("built decomposition: %d trapezoids", len(p.Trapezoids()))))

	path, err := p.Plan(scenario.start, scenario.goal)
	if err != nil {
		fmt.Println(aurora.Red(fmt.Sprintf("plan failed: %v", err)))
		os.Exit(1)
	}

	fmt.Println(aurora.Green(fmt.Sprintf("path with %d waypoints:", len(path))))
	for _, wp := range path {
		fmt.Printf("  %s\n", aurora.Cyan(fmt.Sprintf("(%.2f, %.2f)", wp.X, wp.Y)))
	}

	if os.Getenv("TRAPPLAN_DRAW") != "" {
		if err := draw.Polygons(append(append([]geom.Polygon{}, scenario.obstacles...), p.CSpaceObstacles()...), 1, "/tmp/trapplan_obstacles.png"); err != nil {
			fmt.Println(aurora.Red(fmt.Sprintf("draw failed: %v", err)))
		}
	}
}

type scenario struct {
	obstacles []geom.Polygon
	vehicle   geom.Polygon
	start     geom.Point
	goal      geom.Point
	bounds    geom.Box
}

func readScenario(in *os.File) (scenario, error) {
	var s scenario
	s.vehicle = geom.NewPolygon([]geom.Point{{X: 0, Y: 0}})

	scanner := bufio.NewScanner(in)
	var points []geom.Point
	inVehicle := false

	flushPolygon := func() {
		if len(points) == 0 {
			return
		}
		if inVehicle {
			s.vehicle = geom.NewPolygon(points)
		} else {
			s.obstacles = append(s.obstacles, geom.NewPolygon(points))
		}
		points = nil
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" {
			flushPolygon()
			inVehicle = false
			continue
		}

		fields := strings.Fields(line)
		switch strings.ToUpper(fields[0]) {
		case "VEHICLE":
			flushPolygon()
			inVehicle = true
			continue
		case "START":
			flushPolygon()
			s.start = parsePoint(fields[1], fields[2])
			continue
		case "GOAL":
			flushPolygon()
			s.goal = parsePoint(fields[1], fields[2])
			continue
		case "BOUNDS":
			flushPolygon()
			minX, _ := strconv.ParseFloat(fields[1], 64)
			minY, _ := strconv.ParseFloat(fields[2], 64)
			maxX, _ := strconv.ParseFloat(fields[3], 64)
			maxY, _ := strconv.ParseFloat(fields[4], 64)
			s.bounds = geom.Box{Min: geom.Point{X: minX, Y: minY}, Max: geom.Point{X: maxX, Y: maxY}}
			continue
		}

		points = append(points, parsePoint(fields[0], fields[1]))
	}
	flushPolygon()

	if err := scanner.Err(); err != nil {
		return scenario{}, err
	}
	return s, nil
}

func parsePoint(xs, ys string) geom.Point {
	x, _ := strconv.ParseFloat(xs, 64)
	y, _ := strconv.ParseFloat(ys, 64)
	return geom.Point{X: x, Y: y}
}
