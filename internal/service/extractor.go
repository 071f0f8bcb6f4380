package service

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"travelrec/internal/catalog"
	"travelrec/internal/model"
	"travelrec/internal/utils"
)

const (
	currencyPattern = `(₹\s*|rs\.?\s*|inr\s*)?`
	amountPattern   = `(\d[\d,]*(?:\.\d+)?)`
	ratingPattern   = `(\d(?:\.\d+)?)`
	ratingWords     = `(?:rating|ratings|rated|score|stars?)`
	monthPattern    = `(?:jan|feb|mar|apr|may|jun|jul|aug|sep|sept|oct|nov|dec)[a-z]*`
	countPattern    = `(\d+|one|two|three|four|five|six|seven|eight|nine|ten|eleven|twelve)`
)

var (
	betweenRe = regexp.MustCompile(`\b(?:between|from)\s+` + currencyPattern + amountPattern +
		`\s*(?:and|to|-)\s*` + currencyPattern + amountPattern)
	ratingMinRe = regexp.MustCompile(`\b` + ratingWords +
		`\s+(?:of\s+)?(?:above|over|more than|higher than|greater than|at least|atleast|minimum|min|>=?)\s*` + ratingPattern)
	ratingMaxRe = regexp.MustCompile(`\b` + ratingWords +
		`\s+(?:of\s+)?(?:below|under|less than|lower than|at most|atmost|maximum|max|<=?)\s*` + ratingPattern)
	ratedRe      = regexp.MustCompile(`\b(?:rated|rating of)\s+` + ratingPattern + `\b\s*(?:\+|and above|or more|or above|or higher)?`)
	ratingPlusRe = regexp.MustCompile(`\b` + ratingPattern + `\s*\+\s*` + ratingWords)
	aboveRe      = regexp.MustCompile(`\b(?:above|over|more than|at least|atleast|minimum|min|greater than|starting at|starting from)\s+` +
		currencyPattern + amountPattern)
	belowRe = regexp.MustCompile(`\b(?:under|below|less than|within|upto|up to|max|maximum|at most|not more than|cheaper than)\s+` +
		currencyPattern + amountPattern)
	ratingSuffixRe = regexp.MustCompile(`^\s*(?:stars?|rating|ratings)\b`)
	ratingWordRe   = regexp.MustCompile(`\b` + ratingWords + `\b`)

	partyRe    = regexp.MustCompile(`\b` + countPattern + `\s*-?\s*(?:people|persons?|passengers?|pax|guests?|adults|seats?|seater|members)\b`)
	tableForRe = regexp.MustCompile(`\btable for\s+` + countPattern + `\b`)

	dateRes = []*regexp.Regexp{
		regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`),
		regexp.MustCompile(`\b\d{1,2}/\d{1,2}(?:/\d{2,4})?\b`),
		regexp.MustCompile(`\b\d{1,2}(?:st|nd|rd|th)?\s+` + monthPattern + `\b`),
		regexp.MustCompile(`\b` + monthPattern + `\s+\d{1,2}(?:st|nd|rd|th)?\b`),
		regexp.MustCompile(`\b(?:day after tomorrow|today|tonight|tomorrow|(?:this |next )?weekend|next week|` +
			`(?:this |next )?(?:monday|tuesday|wednesday|thursday|friday|saturday|sunday))\b`),
	}
	timeRe     = regexp.MustCompile(`\b(\d{1,2})(?::(\d{2}))?\s*(am|pm)\b`)
	clockRe    = regexp.MustCompile(`\bat\s+(\d{1,2}):(\d{2})\b`)
	locationRe = regexp.MustCompile(`\b(?:in|at|near|around)\s+([a-z]+)`)
)

var countWords = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5, "six": 6,
	"seven": 7, "eight": 8, "nine": 9, "ten": 10, "eleven": 11, "twelve": 12,
}

// Words that follow "in/at/near" without naming a place
var notPlaces = map[string]bool{
	"the": true, "this": true, "that": true, "least": true, "most": true, "home": true,
	"town": true, "city": true, "area": true, "place": true, "some": true, "any": true,
	"your": true, "mine": true, "good": true, "nice": true, "evening": true, "morning": true,
	"afternoon": true, "night": true, "weekend": true, "time": true, "front": true,
	"center": true, "centre": true, "total": true, "range": true, "price": true, "cost": true,
	"rating": true, "with": true, "which": true, "where": true, "what": true,
}

// Extraction is the lexical analysis of one query
type Extraction struct {
	Text   string
	Params *model.ParamSet
	// Hits counts distinct vocabulary hits per category
	Hits map[model.Category]int
	// CuisineFound is set when a cuisine keyword occurs in the query
	CuisineFound bool
	// NameCategory is the category of ChosenName, empty when no catalog
	// item was named
	NameCategory model.Category
}

// Extractor turns raw query text into typed constraint values. It never
// fails: unrecognised tokens are ignored.
type Extractor struct {
	vocab *Vocabulary
	names []catalog.NamedItem

	restaurantWords phraseSet
	hotelWords      phraseSet
	vehicleWords    phraseSet
	cuisines        phraseSet
	hotelCategories phraseSet
	vehicleTypes    phraseSet
	localities      phraseSet
	cheap           phraseSet
	expensive       phraseSet
	best            phraseSet
	worst           phraseSet
	booking         phraseSet
	allWords        phraseSet
}

// NewExtractor builds an extractor over vocab and the catalog name index
func NewExtractor(vocab *Vocabulary, names []catalog.NamedItem) *Extractor {
	if vocab == nil {
		vocab = DefaultVocabulary()
	}

	var scoringCategories []string
	for _, c := range vocab.HotelCategories {
		// price words are not evidence of a hotel
		if c != "luxury" && c != "budget" {
			scoringCategories = append(scoringCategories, c)
		}
	}

	vehicleTypes := withPlurals(vocab.VehicleTypes)

	e := &Extractor{
		vocab:           vocab,
		names:           names,
		restaurantWords: newPhraseSet(vocab.RestaurantKeywords, vocab.Cuisines),
		hotelWords:      newPhraseSet(vocab.HotelKeywords, scoringCategories),
		vehicleWords:    newPhraseSet(vocab.VehicleKeywords, vehicleTypes, vocab.CapacityWords),
		cuisines:        newPhraseSet(vocab.Cuisines),
		hotelCategories: newPhraseSet(vocab.HotelCategories),
		vehicleTypes:    newPhraseSet(vehicleTypes),
		localities:      newPhraseSet(vocab.Localities),
		cheap:           newPhraseSet(vocab.CheapWords),
		expensive:       newPhraseSet(vocab.ExpensiveWords),
		best:            newPhraseSet(vocab.BestWords),
		worst:           newPhraseSet(vocab.WorstWords),
		booking:         newPhraseSet(vocab.BookingWords),
	}
	e.allWords = newPhraseSet(
		vocab.RestaurantKeywords, vocab.HotelKeywords, vocab.VehicleKeywords,
		vocab.Cuisines, vocab.HotelCategories, vehicleTypes, vocab.CapacityWords,
		vocab.CheapWords, vocab.ExpensiveWords, vocab.BestWords, vocab.WorstWords,
		vocab.BookingWords,
	)
	return e
}

// NormalizeQuery lower-cases the query and collapses whitespace
func NormalizeQuery(query string) string {
	query = strings.NewReplacer("’", "'", "‘", "'", "“", `"`, "”", `"`).Replace(query)
	return strings.Join(strings.Fields(strings.ToLower(query)), " ")
}

// Extract analyses a query
func (e *Extractor) Extract(query string) *Extraction {
	text := NormalizeQuery(query)
	p := &model.ParamSet{}
	ex := &Extraction{Text: text, Params: p, Hits: make(map[model.Category]int, len(model.Categories))}

	// work is progressively blanked out so a token is only interpreted once
	work := text

	if item, ok := e.lookupName(text); ok {
		name := item.Name
		p.ChosenName = &name
		ex.NameCategory = item.Category
		work = strings.Replace(work, name, blank(name), 1)
	}

	work = e.extractDates(work, p)
	work = e.extractTime(work, p)
	work = e.extractPartySize(work, p)
	work = e.extractRatings(work, p)
	e.extractPrices(work, p)

	if e.cheap.any(work) {
		p.PriceLevel = model.PriceLevelCheap
	} else if e.expensive.any(work) {
		p.PriceLevel = model.PriceLevelExpensive
	}

	if e.best.any(work) {
		p.RatingLevel = model.RatingLevelHigh
	} else if e.worst.any(work) {
		p.RatingLevel = model.RatingLevelLow
	}

	p.BookingRequested = e.booking.any(text)

	if loc, ok := e.extractLocation(work, p.ChosenName != nil); ok {
		p.Location = &loc
	}

	if cuisine, ok := e.cuisines.find(work); ok {
		p.Cuisine = &cuisine
		p.SimilarCuisines = append([]string(nil), e.vocab.SimilarCuisines[cuisine]...)
		ex.CuisineFound = true
	}

	p.Amenities = utils.ExtractAmenities(work)

	if category, ok := e.hotelCategories.find(work); ok {
		p.HotelCategory = &category
	}

	if vt, ok := e.vehicleTypes.find(work); ok {
		vt = e.singularVehicleType(vt)
		p.VehicleType = &vt
	}

	ex.Hits[model.CategoryRestaurant] = len(e.restaurantWords.matches(work))
	ex.Hits[model.CategoryHotel] = len(e.hotelWords.matches(work)) + len(p.Amenities)
	ex.Hits[model.CategoryVehicle] = len(e.vehicleWords.matches(work))

	return ex
}

// lookupName finds the longest catalog name contained in text as a phrase
func (e *Extractor) lookupName(text string) (catalog.NamedItem, bool) {
	for _, item := range e.names {
		if !strings.Contains(text, item.Name) {
			continue
		}
		if utils.WordPattern(item.Name).MatchString(text) {
			return item, true
		}
	}
	return catalog.NamedItem{}, false
}

func (e *Extractor) extractDates(work string, p *model.ParamSet) string {
	type hit struct {
		start, end int
	}
	var hits []hit
	for _, re := range dateRes {
		for _, loc := range re.FindAllStringIndex(work, -1) {
			hits = append(hits, hit{loc[0], loc[1]})
		}
	}
	if len(hits) == 0 {
		return work
	}

	sort.Slice(hits, func(i, j int) bool { return hits[i].start < hits[j].start })

	var tokens []string
	lastEnd := -1
	for _, h := range hits {
		if h.start < lastEnd {
			continue
		}
		tokens = append(tokens, work[h.start:h.end])
		lastEnd = h.end
	}

	p.DateRange = &model.DateRange{From: tokens[0]}
	if len(tokens) > 1 {
		p.DateRange.To = tokens[1]
	}

	for _, h := range hits {
		work = work[:h.start] + blank(work[h.start:h.end]) + work[h.end:]
	}
	return work
}

func (e *Extractor) extractTime(work string, p *model.ParamSet) string {
	if m := timeRe.FindStringSubmatchIndex(work); m != nil {
		hour := work[m[2]:m[3]]
		minutes := ""
		if m[4] >= 0 {
			minutes = ":" + work[m[4]:m[5]]
		}
		t := fmt.Sprintf("%s%s %s", hour, minutes, work[m[6]:m[7]])
		p.TimeOfDay = &t
		return work[:m[0]] + blank(work[m[0]:m[1]]) + work[m[1]:]
	}
	if m := clockRe.FindStringSubmatchIndex(work); m != nil {
		t := work[m[2]:m[3]] + ":" + work[m[4]:m[5]]
		p.TimeOfDay = &t
		return work[:m[0]] + blank(work[m[0]:m[1]]) + work[m[1]:]
	}
	return work
}

func (e *Extractor) extractPartySize(work string, p *model.ParamSet) string {
	for _, re := range []*regexp.Regexp{partyRe, tableForRe} {
		m := re.FindStringSubmatchIndex(work)
		if m == nil {
			continue
		}
		n, ok := parseCount(work[m[2]:m[3]])
		if !ok || n <= 0 {
			continue
		}
		capacity, party := n, n
		p.CapacityMin = &capacity
		p.PartySize = &party
		// keep the noun so "passengers" still counts as vehicle vocabulary
		return work[:m[2]] + blank(work[m[2]:m[3]]) + work[m[3]:]
	}
	return work
}

func (e *Extractor) extractRatings(work string, p *model.ParamSet) string {
	if m := ratingMinRe.FindStringSubmatchIndex(work); m != nil {
		p.RatingMin = parseRating(work[m[2]:m[3]])
		work = work[:m[0]] + blank(work[m[0]:m[1]]) + work[m[1]:]
	}
	if m := ratingMaxRe.FindStringSubmatchIndex(work); m != nil {
		p.RatingMax = parseRating(work[m[2]:m[3]])
		work = work[:m[0]] + blank(work[m[0]:m[1]]) + work[m[1]:]
	}
	for _, re := range []*regexp.Regexp{ratedRe, ratingPlusRe} {
		if m := re.FindStringSubmatchIndex(work); m != nil {
			if p.RatingMin == nil {
				p.RatingMin = parseRating(work[m[2]:m[3]])
			}
			work = work[:m[0]] + blank(work[m[0]:m[1]]) + work[m[1]:]
		}
	}

	if m := betweenRe.FindStringSubmatchIndex(work); m != nil {
		lo, okLo := parseAmount(work[m[4]:m[5]])
		hi, okHi := parseAmount(work[m[8]:m[9]])
		if okLo && okHi {
			if lo > hi {
				lo, hi = hi, lo
			}
			ratingContext := m[2] < 0 && m[6] < 0 && hi <= 5 && ratingWordRe.MatchString(work)
			if ratingContext {
				p.RatingMin, p.RatingMax = &lo, &hi
			} else {
				p.PriceMin, p.PriceMax = &lo, &hi
			}
			work = work[:m[0]] + blank(work[m[0]:m[1]]) + work[m[1]:]
		}
	}
	return work
}

// extractPrices handles the comparatives left after rating phrases were
// consumed. Without a currency marker a bare "above N" with N <= 5 reads
// as a rating floor.
func (e *Extractor) extractPrices(work string, p *model.ParamSet) {
	for _, m := range aboveRe.FindAllStringSubmatchIndex(work, -1) {
		v, ok := parseAmount(work[m[4]:m[5]])
		if !ok {
			continue
		}
		hasCurrency := m[2] >= 0 && m[3] > m[2]
		switch {
		case !hasCurrency && (v <= 5 || ratingSuffixRe.MatchString(work[m[1]:])):
			if p.RatingMin == nil {
				p.RatingMin = &v
			}
		case p.PriceMin == nil:
			p.PriceMin = &v
		}
	}

	for _, m := range belowRe.FindAllStringSubmatchIndex(work, -1) {
		v, ok := parseAmount(work[m[4]:m[5]])
		if !ok {
			continue
		}
		hasCurrency := m[2] >= 0 && m[3] > m[2]
		switch {
		case !hasCurrency && ratingSuffixRe.MatchString(work[m[1]:]):
			if p.RatingMax == nil {
				p.RatingMax = &v
			}
		case p.PriceMax == nil:
			p.PriceMax = &v
		}
	}
}

func (e *Extractor) extractLocation(work string, named bool) (string, bool) {
	if loc, ok := e.localities.find(work); ok {
		return loc, true
	}
	if named {
		return "", false
	}

	m := locationRe.FindStringSubmatch(work)
	if m == nil {
		return "", false
	}
	word := m[1]
	if len(word) < 3 || notPlaces[word] || e.allWords.has(word) || e.cuisines.any(word) {
		return "", false
	}
	if strings.HasSuffix(word, "s") && e.allWords.has(strings.TrimSuffix(word, "s")) {
		return "", false
	}
	return word, true
}

func (e *Extractor) singularVehicleType(w string) string {
	for _, t := range e.vocab.VehicleTypes {
		if w == t {
			return t
		}
	}
	for _, suffix := range []string{"es", "s"} {
		base := strings.TrimSuffix(w, suffix)
		for _, t := range e.vocab.VehicleTypes {
			if base == t {
				return t
			}
		}
	}
	return w
}

func withPlurals(words []string) []string {
	out := make([]string, 0, len(words)*2)
	for _, w := range words {
		out = append(out, w)
		switch {
		case strings.HasSuffix(w, "s"):
			out = append(out, w+"es")
		default:
			out = append(out, w+"s")
		}
	}
	return out
}

func parseCount(s string) (int, bool) {
	if n, ok := countWords[s]; ok {
		return n, true
	}
	n, err := strconv.Atoi(s)
	return n, err == nil
}

func parseAmount(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	return v, err == nil
}

func parseRating(s string) *float64 {
	v, ok := parseAmount(s)
	if !ok {
		return nil
	}
	return &v
}

// blank replaces s with spaces of the same byte length so offsets into the
// surrounding text stay valid
func blank(s string) string {
	return strings.Repeat(" ", len(s))
}
