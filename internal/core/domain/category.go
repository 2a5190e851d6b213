package domain

// Category is one of the fixed category codes the platform accepts when a
// draft is created. The set below mirrors the platform's published list.
type Category string

const (
	CategoryMusic              Category = "music"
	CategoryMovies             Category = "movies"
	CategoryShorts             Category = "shorts"
	CategoryNews               Category = "news"
	CategoryPolitics           Category = "politics"
	CategoryEntertainment      Category = "entertainment"
	CategoryComedy             Category = "comedy"
	CategoryGaming             Category = "gaming"
	CategorySports             Category = "sports"
	CategoryFitness            Category = "fitness"
	CategoryHealth             Category = "health"
	CategoryFood               Category = "food"
	CategoryCooking            Category = "cooking"
	CategoryTravel             Category = "travel"
	CategoryNature             Category = "nature"
	CategoryAnimals            Category = "animals"
	CategoryScience            Category = "science"
	CategoryTechnology         Category = "technology"
	CategoryEducation          Category = "education"
	CategoryHistory            Category = "history"
	CategoryCulture            Category = "culture"
	CategoryArts               Category = "arts"
	CategoryDance              Category = "dance"
	CategoryPhotography        Category = "photography"
	CategoryFashion            Category = "fashion"
	CategoryBeauty             Category = "beauty"
	CategoryLifestyle          Category = "lifestyle"
	CategoryFamily             Category = "family"
	CategoryKids               Category = "kids"
	CategoryParenting          Category = "parenting"
	CategoryDIY                Category = "diy"
	CategoryCrafts             Category = "crafts"
	CategoryGardening          Category = "gardening"
	CategoryAutomotive         Category = "automotive"
	CategoryBusiness           Category = "business"
	CategoryFinance            Category = "finance"
	CategoryRealEstate         Category = "real-estate"
	CategoryMotivation         Category = "motivation"
	CategorySpirituality       Category = "spirituality"
	CategoryMeditation         Category = "meditation"
	CategoryTraditionalCulture Category = "traditional-culture"
	CategoryDocumentary        Category = "documentary"
	CategoryVlog               Category = "vlog"
	CategoryAnimation          Category = "animation"
	CategoryPodcasts           Category = "podcasts"
)

var allCategories = []Category{
	CategoryMusic, CategoryMovies, CategoryShorts, CategoryNews,
	CategoryPolitics, CategoryEntertainment, CategoryComedy, CategoryGaming,
	CategorySports, CategoryFitness, CategoryHealth, CategoryFood,
	CategoryCooking, CategoryTravel, CategoryNature, CategoryAnimals,
	CategoryScience, CategoryTechnology, CategoryEducation, CategoryHistory,
	CategoryCulture, CategoryArts, CategoryDance, CategoryPhotography,
	CategoryFashion, CategoryBeauty, CategoryLifestyle, CategoryFamily,
	CategoryKids, CategoryParenting, CategoryDIY, CategoryCrafts,
	CategoryGardening, CategoryAutomotive, CategoryBusiness, CategoryFinance,
	CategoryRealEstate, CategoryMotivation, CategorySpirituality,
	CategoryMeditation, CategoryTraditionalCulture, CategoryDocumentary,
	CategoryVlog, CategoryAnimation, CategoryPodcasts,
}

var categorySet = func() map[Category]struct{} {
	m := make(map[Category]struct{}, len(allCategories))
	for _, c := range allCategories {
		m[c] = struct{}{}
	}
	return m
}()

// Valid reports whether c is one of the platform's category codes.
func (c Category) Valid() bool {
	_, ok := categorySet[c]
	return ok
}

// Categories returns the full list of platform category codes.
func Categories() []Category {
	out := make([]Category, len(allCategories))
	copy(out, allCategories)
	return out
}
