package deck

type Loader interface {
	Load(path string) (Deck, error)
	Default() (Deck, error)
}
