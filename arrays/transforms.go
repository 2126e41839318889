package arrays

func Map[InputType, OutputType any](input []InputType, f func(InputType) OutputType) []OutputType {
	result := make([]OutputType, len(input))
	for i, v := range input {
		result[i] = f(v)
	}
	return result
}

// MapWithError applies f to every element, stopping at the first error.
func MapWithError[InputType, OutputType any](input []InputType, f func(int, InputType) (OutputType, error)) ([]OutputType, error) {
	result := make([]OutputType, len(input))
	for i, v := range input {
		mapped, err := f(i, v)
		if err != nil {
			return nil, err
		}
		result[i] = mapped
	}
	return result, nil
}

func Filter[ArrayType any](input []ArrayType, f func(ArrayType) bool) []ArrayType {
	result := []ArrayType{}

	for _, v := range input {
		if f(v) {
			result = append(result, v)
		}
	}
	return result
}
