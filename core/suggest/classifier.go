package suggest

// Classifier maps a text to the catalog category whose keywords it matches the most.
type Classifier struct {
	categories []Category
	keywords   [][]string // normalized, per category, both languages
	index      map[string]int
}

// NewClassifier returns a Classifier over categories; the last CategoryGeneral entry, or
// the last category, is the fallback.
func NewClassifier(categories []Category) *Classifier {
	c := &Classifier{
		categories: categories,
		keywords:   make([][]string, len(categories)),
		index:      make(map[string]int, len(categories)),
	}
	for i, cat := range categories {
		c.index[cat.Name] = i
		seen := make(map[string]bool)
		for _, lang := range []string{en, fr} {
			for _, kw := range cat.Keywords[lang] {
				kw = Normalize(kw)
				if kw == "" || seen[kw] {
					continue
				}
				seen[kw] = true
				c.keywords[i] = append(c.keywords[i], kw)
			}
		}
	}
	return c
}

// DefaultClassifier classifies over the built-in catalog.
func DefaultClassifier() *Classifier {
	return NewClassifier(catalog)
}

// Classify returns the best matching category of text and its score.
// Ties go to the category listed first; no match falls back to the general category.
func (c *Classifier) Classify(text string) (Category, int) {
	padded := pad(Normalize(text))
	best, bestScore := -1, 0
	for i, kws := range c.keywords {
		score := 0
		for _, kw := range kws {
			if containsPhrase(padded, kw) {
				score++
			}
		}
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	if best < 0 {
		return c.fallback(), 0
	}
	return c.categories[best], bestScore
}

// Category looks a category up by name.
func (c *Classifier) Category(name string) (Category, bool) {
	i, ok := c.index[name]
	if !ok {
		return Category{}, false
	}
	return c.categories[i], true
}

// Categories returns the category names in catalog order.
func (c *Classifier) Categories() []string {
	names := make([]string, 0, len(c.categories))
	for _, cat := range c.categories {
		names = append(names, cat.Name)
	}
	return names
}

func (c *Classifier) fallback() Category {
	if cat, ok := c.Category(CategoryGeneral); ok {
		return cat
	}
	if len(c.categories) == 0 {
		return Category{Name: CategoryGeneral}
	}
	return c.categories[len(c.categories)-1]
}
