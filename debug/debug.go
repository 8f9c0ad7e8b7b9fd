package debug

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Load      bool
	Normalize bool
	Build     bool
	Units     bool
}

var d *debug

func init() {
	d = &debug{}
	d.Load = boolEnv("OBF_DEBUG_LOAD")
	d.Normalize = boolEnv("OBF_DEBUG_NORMALIZE")
	d.Build = boolEnv("OBF_DEBUG_BUILD")
	d.Units = boolEnv("OBF_DEBUG_UNITS")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Load() bool {
	return d.Load
}
func Normalize() bool {
	return d.Normalize
}
func Build() bool {
	return d.Build
}
func Units() bool {
	return d.Units
}

func Logf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}

func JSON(v any) string {
	res, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("<err: %v>", err)
	}
	return string(res)
}
