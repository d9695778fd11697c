package main

import (
	"flag"
	"fmt"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/Freeeeeet/classbot/internal/controller/render"
	"github.com/Freeeeeet/classbot/internal/timetable"
)

func main() {
	var (
		group = flag.String("group", "Group-7", "group to render")
		path  = flag.String("timetable", "", "timetable YAML (embedded default when empty)")
		zone  = flag.String("tz", "Asia/Kolkata", "operating timezone")
		date  = flag.String("date", "", "any day of the week to render, YYYY-MM-DD (today when empty)")
		out   = flag.String("out", "week.png", "output file")
	)
	flag.Parse()

	loc, err := time.LoadLocation(*zone)
	if err != nil {
		fail("load timezone: %v", err)
	}

	var reg *timetable.Registry
	if *path == "" {
		reg, err = timetable.DefaultRegistry(loc)
	} else {
		reg, err = timetable.LoadRegistryFile(*path, loc)
	}
	if err != nil {
		fail("load timetable: %v", err)
	}

	table, err := reg.Table(*group)
	if err != nil {
		fail("%v (supported: %v)", err, reg.Names())
	}

	now := time.Now().In(loc)
	if *date != "" {
		now, err = time.ParseInLocation("2006-01-02", *date, loc)
		if err != nil {
			fail("parse date: %v", err)
		}
	}

	img, err := render.WeekImage(table, now)
	if err != nil {
		fail("render: %v", err)
	}
	if err := os.WriteFile(*out, img, 0o644); err != nil {
		fail("write %s: %v", *out, err)
	}

	fmt.Printf("Saved %s week to %s\n", table.Name(), *out)
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
