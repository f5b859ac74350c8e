package spoke

import "golang.org/x/exp/constraints"

func checkedAdd[T constraints.Unsigned](a, b T) (T, error) {
	sum := a + b
	if sum < a {
		return 0, ErrOverflow
	}
	return sum, nil
}

func saturatingAdd[T constraints.Unsigned](a, b T) T {
	sum := a + b
	if sum < a {
		return ^T(0)
	}
	return sum
}

func checkedSum[T constraints.Unsigned](values ...T) (T, error) {
	var total T
	for _, v := range values {
		next, err := checkedAdd(total, v)
		if err != nil {
			return 0, err
		}
		total = next
	}
	return total, nil
}
