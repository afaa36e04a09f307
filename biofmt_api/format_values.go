package biofmt_api

import (
	"fmt"
	"strconv"
	"strings"
)

//
// GT
//

// A decoded genotype call
type GenotypeValue struct {
	raw string

	// Whether the alleles are separated by '|'
	IsPhased bool

	// The allele indexes in call order
	Alleles []OptionalInt

	// The amount of alleles in the call
	Ploidy int

	// Whether any allele is missing
	HasMissing bool

	// The bases of every allele, empty when missing or unknown to the record
	Bases []string
}

func decodeGenotype(_ string, raw string, _ *HeaderLineIdNumberTypeDescription, context FormatContext) FormatValue {
	genotype := &GenotypeValue{raw: raw}
	if isMissingValue(raw) {
		genotype.Alleles = []OptionalInt{Missing()}
	} else {
		separator := "/"
		if strings.Contains(raw, "|") {
			genotype.IsPhased = true
			separator = "|"
		}
		for _, token := range strings.Split(raw, separator) {
			genotype.Alleles = append(genotype.Alleles, parseOptionalInt(token))
		}
	}

	genotype.Ploidy = len(genotype.Alleles)
	genotype.Bases = make([]string, len(genotype.Alleles))
	for index, allele := range genotype.Alleles {
		if !allele.Valid {
			genotype.HasMissing = true
			continue
		}
		if bases, ok := context.allele(allele.Value); ok {
			genotype.Bases[index] = bases
		}
	}
	return genotype
}

func (genotype *GenotypeValue) Key() string { return "GT" }
func (genotype *GenotypeValue) Raw() string { return genotype.raw }

func (genotype *GenotypeValue) separator() string {
	if genotype.IsPhased {
		return "|"
	}
	return "/"
}

// maxAllele returns the highest called allele index
func (genotype *GenotypeValue) maxAllele() (int64, bool) {
	found := false
	var highest int64
	for _, allele := range genotype.Alleles {
		if allele.Valid && (!found || allele.Value > highest) {
			highest = allele.Value
			found = true
		}
	}
	return highest, found
}

// Zygosity describes the relation between the called alleles
func (genotype *GenotypeValue) Zygosity() string {
	called := []int64{}
	for _, allele := range genotype.Alleles {
		if allele.Valid {
			called = append(called, allele.Value)
		}
	}
	switch {
	case len(called) == 0:
		return "missing"
	case genotype.Ploidy == 1:
		return "haploid"
	case genotype.HasMissing:
		return "partially called"
	}
	for _, allele := range called[1:] {
		if allele != called[0] {
			return "heterozygous"
		}
	}
	if called[0] == 0 {
		return "homozygous reference"
	}
	return "homozygous alternate"
}

func (genotype *GenotypeValue) basesDisplay() (string, bool) {
	for index, allele := range genotype.Alleles {
		if allele.Valid && genotype.Bases[index] == "" {
			return "", false
		}
	}
	parts := make([]string, len(genotype.Bases))
	for index, bases := range genotype.Bases {
		if bases == "" {
			bases = "."
		}
		parts[index] = bases
	}
	return strings.Join(parts, genotype.separator()), true
}

func (genotype *GenotypeValue) RenderDisplay() string {
	display := joinOptionalInts(genotype.Alleles, genotype.separator())
	if bases, ok := genotype.basesDisplay(); ok && !genotype.allMissing() {
		display += " (" + bases + ")"
	}
	return display
}

func (genotype *GenotypeValue) allMissing() bool {
	_, found := genotype.maxAllele()
	return !found
}

func (genotype *GenotypeValue) Summarize() []SummaryItem {
	phasing := "Unphased call"
	if genotype.IsPhased {
		phasing = "Phased call"
	}
	items := []SummaryItem{
		{Label: "Genotype", Value: joinOptionalInts(genotype.Alleles, genotype.separator()), Tooltip: phasing},
		{Label: "Zygosity", Value: genotype.Zygosity(), Tooltip: "Relation between the called alleles"},
		{Label: "Ploidy", Value: strconv.Itoa(genotype.Ploidy), Tooltip: "Number of alleles in the call"},
	}
	if bases, ok := genotype.basesDisplay(); ok && !genotype.allMissing() {
		items = append(items, SummaryItem{Label: "Alleles", Value: bases, Tooltip: "Called alleles resolved against REF and ALT"})
	}
	return items
}

//
// GQ, DP and PS
//

var integerLabels = map[string]SummaryItem{
	"GQ": {Label: "Genotype quality", Tooltip: "Phred-scaled confidence that the genotype call is correct"},
	"DP": {Label: "Read depth", Tooltip: "Number of reads covering this sample"},
	"PS": {Label: "Phase set", Tooltip: "Calls sharing this identifier are phased relative to each other"},
}

// A single integer FORMAT value
type IntegerValue struct {
	key string
	raw string

	Value OptionalInt
}

func decodeInteger(key string, raw string, _ *HeaderLineIdNumberTypeDescription, _ FormatContext) FormatValue {
	return &IntegerValue{key: key, raw: raw, Value: parseOptionalInt(raw)}
}

func (value *IntegerValue) Key() string           { return value.key }
func (value *IntegerValue) Raw() string           { return value.raw }
func (value *IntegerValue) RenderDisplay() string { return value.Value.String() }

func (value *IntegerValue) Summarize() []SummaryItem {
	item := integerLabels[value.key]
	if item.Label == "" {
		item.Label = value.key
	}
	item.Value = value.Value.String()
	return []SummaryItem{item}
}

//
// AD
//

// Allelic depths, the reference allele first
type AlleleDepthValue struct {
	raw string

	Values    []OptionalInt
	RefDepth  OptionalInt
	AltDepths []OptionalInt

	// The sum of all present depths
	Total int64
}

func decodeAlleleDepth(_ string, raw string, _ *HeaderLineIdNumberTypeDescription, _ FormatContext) FormatValue {
	depth := &AlleleDepthValue{raw: raw, Values: parseOptionalInts(raw), AltDepths: []OptionalInt{}}
	if len(depth.Values) == 0 {
		return depth
	}
	depth.RefDepth = depth.Values[0]
	depth.AltDepths = depth.Values[1:]
	for _, value := range depth.Values {
		if value.Valid {
			depth.Total += value.Value
		}
	}
	return depth
}

func (depth *AlleleDepthValue) Key() string { return "AD" }
func (depth *AlleleDepthValue) Raw() string { return depth.raw }

func (depth *AlleleDepthValue) RenderDisplay() string {
	if len(depth.Values) == 0 {
		return "."
	}
	return fmt.Sprintf("%s (total %d)", joinOptionalInts(depth.Values, ","), depth.Total)
}

func (depth *AlleleDepthValue) Summarize() []SummaryItem {
	items := []SummaryItem{
		{Label: "Reference depth", Value: depth.RefDepth.String(), Tooltip: "Reads supporting the reference allele"},
		{Label: "Alternate depths", Value: joinOptionalInts(depth.AltDepths, ","), Tooltip: "Reads supporting each alternate allele"},
		{Label: "Total depth", Value: strconv.FormatInt(depth.Total, 10), Tooltip: "Sum of the allelic depths"},
	}
	if depth.Total > 0 {
		var alt int64
		for _, value := range depth.AltDepths {
			if value.Valid {
				alt += value.Value
			}
		}
		fraction := strconv.FormatFloat(float64(alt)/float64(depth.Total), 'f', 2, 64)
		items = append(items, SummaryItem{Label: "Alternate fraction", Value: fraction, Tooltip: "Alternate reads over all reads"})
	}
	return items
}

//
// PL
//

// Phred-scaled genotype likelihoods
type LikelihoodValue struct {
	raw string

	Values []OptionalInt

	// The lowest present value
	MinValue OptionalInt

	// The index of the first occurrence of the lowest value, -1 without present values
	MinIndex int

	// The first three values of a biallelic record (0/0, 0/1, 1/1), nil otherwise
	BiallelicTriple *[3]OptionalInt
}

func decodeLikelihood(_ string, raw string, _ *HeaderLineIdNumberTypeDescription, context FormatContext) FormatValue {
	likelihood := &LikelihoodValue{raw: raw, Values: parseOptionalInts(raw), MinIndex: -1}
	for index, value := range likelihood.Values {
		if !value.Valid {
			continue
		}
		if !likelihood.MinValue.Valid || value.Value < likelihood.MinValue.Value {
			likelihood.MinValue = value
			likelihood.MinIndex = index
		}
	}
	if context.NAlleles() == 2 && len(likelihood.Values) >= 3 {
		likelihood.BiallelicTriple = &[3]OptionalInt{likelihood.Values[0], likelihood.Values[1], likelihood.Values[2]}
	}
	return likelihood
}

func (likelihood *LikelihoodValue) Key() string { return "PL" }
func (likelihood *LikelihoodValue) Raw() string { return likelihood.raw }

var biallelicGenotypes = [3]string{"0/0", "0/1", "1/1"}

func (likelihood *LikelihoodValue) RenderDisplay() string {
	display := joinOptionalInts(likelihood.Values, ",")
	if likelihood.BiallelicTriple != nil && likelihood.MinIndex >= 0 && likelihood.MinIndex < 3 {
		display += " (best " + biallelicGenotypes[likelihood.MinIndex] + ")"
	}
	return display
}

func (likelihood *LikelihoodValue) Summarize() []SummaryItem {
	items := []SummaryItem{
		{Label: "Likelihoods", Value: joinOptionalInts(likelihood.Values, ","), Tooltip: "Phred-scaled genotype likelihoods, lower is more likely"},
		{Label: "Most likely", Value: likelihoodIndex(likelihood.MinIndex), Tooltip: "Index of the lowest likelihood"},
		{Label: "Lowest value", Value: likelihood.MinValue.String(), Tooltip: "The lowest likelihood"},
	}
	if triple := likelihood.BiallelicTriple; triple != nil {
		for index, value := range triple {
			items = append(items, SummaryItem{
				Label:   "PL " + biallelicGenotypes[index],
				Value:   value.String(),
				Tooltip: "Likelihood of genotype " + biallelicGenotypes[index],
			})
		}
	}
	return items
}

func likelihoodIndex(index int) string {
	if index < 0 {
		return "."
	}
	return strconv.Itoa(index)
}

//
// FT
//

// A per-sample filter status
type FilterValue struct {
	raw string

	IsPassing     bool
	FailedFilters []string
}

func decodeFilter(_ string, raw string, _ *HeaderLineIdNumberTypeDescription, _ FormatContext) FormatValue {
	filter := &FilterValue{raw: raw, FailedFilters: []string{}}
	if isMissingValue(raw) || raw == "PASS" {
		filter.IsPassing = true
		return filter
	}
	tokens := strings.FieldsFunc(raw, func(letter rune) bool {
		return letter == ';' || letter == ','
	})
	for _, token := range tokens {
		if token == "" || token == "PASS" {
			continue
		}
		filter.FailedFilters = append(filter.FailedFilters, token)
	}
	filter.IsPassing = len(filter.FailedFilters) == 0
	return filter
}

func (filter *FilterValue) Key() string { return "FT" }
func (filter *FilterValue) Raw() string { return filter.raw }

func (filter *FilterValue) RenderDisplay() string {
	if filter.IsPassing {
		return "PASS"
	}
	return strings.Join(filter.FailedFilters, ";")
}

func (filter *FilterValue) Summarize() []SummaryItem {
	if filter.IsPassing {
		return []SummaryItem{{Label: "Filter", Value: "PASS", Tooltip: "The sample passed all filters"}}
	}
	return []SummaryItem{{
		Label:   "Filter",
		Value:   strings.Join(filter.FailedFilters, ";"),
		Tooltip: fmt.Sprintf("The sample failed %d filter(s)", len(filter.FailedFilters)),
	}}
}
