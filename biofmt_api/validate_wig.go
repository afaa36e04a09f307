package biofmt_api

import (
	"fmt"
	"strings"
)

type wigMode int

const (
	wigNone wigMode = iota
	wigVariableStep
	wigFixedStep
)

// The amount of whitespace separated values on a data line per mode
var wigArity = map[wigMode]int{
	wigVariableStep: 2,
	wigFixedStep:    1,
}

func validateWig(v *validation) {
	mode := wigNone
	for index := 0; index < v.limit; index++ {
		if v.out.full() {
			return
		}
		line := v.lines[index]
		if ShouldSkipLine(line, trackPrefixes...) {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "variableStep":
			mode = wigVariableStep
			validateWigDeclaration(v, index, line, fields[0], parseWigDeclaration(fields[1:]))
			continue
		case "fixedStep":
			mode = wigFixedStep
			validateWigDeclaration(v, index, line, fields[0], parseWigDeclaration(fields[1:]))
			continue
		}

		if mode == wigNone {
			v.out.add(LineDiagnostic(index, line, "Data line found before a variableStep or fixedStep declaration", SeverityError))
			continue
		}
		if expected := wigArity[mode]; len(fields) != expected {
			message := fmt.Sprintf("Expected %d value(s) per data line, found %d", expected, len(fields))
			v.out.add(LineDiagnostic(index, line, message, SeverityError))
			continue
		}
		if mode == wigVariableStep {
			if position, ok := parseInteger(fields[0]); !ok || position < 1 {
				v.out.add(LineDiagnostic(index, line, "Position must be a positive integer", SeverityError))
				continue
			}
		}
		if !isNumeric(fields[len(fields)-1]) {
			v.out.add(LineDiagnostic(index, line, "Value must be numeric", SeverityError))
		}
	}
}

func parseWigDeclaration(fields []string) map[string]string {
	declaration := map[string]string{}
	for _, field := range fields {
		if key, value, ok := strings.Cut(field, "="); ok {
			declaration[key] = value
		}
	}
	return declaration
}

func validateWigDeclaration(v *validation, index int, line string, kind string, declaration map[string]string) {
	if _, ok := declaration["chrom"]; !ok {
		v.out.add(LineDiagnostic(index, line, fmt.Sprintf("%s declaration requires chrom=", kind), SeverityError))
	}

	required := []string{}
	if kind == "fixedStep" {
		required = []string{"start", "step"}
	}
	for _, key := range required {
		value, ok := declaration[key]
		if !ok {
			v.out.add(LineDiagnostic(index, line, fmt.Sprintf("%s declaration requires %s=", kind, key), SeverityError))
			continue
		}
		if parsed, valid := parseInteger(value); !valid || parsed < 1 {
			v.out.add(LineDiagnostic(index, line, fmt.Sprintf("%s must be a positive integer", key), SeverityError))
		}
	}

	if span, ok := declaration["span"]; ok {
		if parsed, valid := parseInteger(span); !valid || parsed < 1 {
			v.out.add(LineDiagnostic(index, line, "span must be a positive integer", SeverityError))
		}
	}
}
