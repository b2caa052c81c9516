package compose_test

import (
	"context"

	"github.com/pkg/errors"

	"github.com/askiada/go-compose/pkg/compose"
)

// scope records which units ran, in order.
type scope = *[]int

var errRight = errors.New("Work correctly!")

func newScope() scope {
	return &[]int{}
}

func anys(vals []int) []any {
	res := make([]any, 0, len(vals))
	for _, v := range vals {
		res = append(res, v)
	}

	return res
}

func pushArgs(arr *[]int, args []any) {
	for _, a := range args {
		*arr = append(*arr, a.(int))
	}
}

// pushRets appends what a continuation returned, if anything.
func pushRets(arr *[]int, rets any) {
	if rets == nil {
		return
	}

	*arr = append(*arr, rets.([]int)...)
}

// midWare records its args, tags the scope with c1, forwards a1, records what came back, tags the
// scope with c2 and returns a2.
func midWare(arr *[]int, a1, a2 []int, c1, c2 int) compose.Unit[scope] {
	return compose.F(func(ctx context.Context, s scope, next compose.Next, args ...any) (any, error) {
		pushArgs(arr, args)
		*s = append(*s, c1)

		rets, err := next(ctx, anys(a1)...)
		if err != nil {
			return nil, err
		}

		pushRets(arr, rets)
		*s = append(*s, c2)

		return a2, nil
	})
}

// endWare forwards -1 and records -1 if anything came back, then records a1 and returns a2.
func endWare(arr *[]int, a1, a2 []int, c1, c2 int) compose.Unit[scope] {
	return compose.F(func(ctx context.Context, s scope, next compose.Next, args ...any) (any, error) {
		pushArgs(arr, args)
		*s = append(*s, c1)

		rets, err := next(ctx, -1)
		if err != nil {
			return nil, err
		}

		if rets != nil {
			*arr = append(*arr, -1)
		}

		*arr = append(*arr, a1...)
		*s = append(*s, c2)

		return a2, nil
	})
}

// retWare stops the chain and returns a1.
func retWare(arr *[]int, a1 []int, c1 int) compose.Unit[scope] {
	return compose.F(func(_ context.Context, s scope, _ compose.Next, args ...any) (any, error) {
		pushArgs(arr, args)
		*s = append(*s, c1)

		return a1, nil
	})
}

// falseWare is a condition that always fails.
func falseWare(arr *[]int, c1 int) compose.Unit[scope] {
	return compose.F(func(_ context.Context, s scope, _ compose.Next, args ...any) (any, error) {
		pushArgs(arr, args)
		*s = append(*s, c1)

		return -1, nil
	})
}

func errBeforeNext(arr *[]int, c1 int) compose.Unit[scope] {
	return compose.F(func(_ context.Context, s scope, _ compose.Next, args ...any) (any, error) {
		pushArgs(arr, args)
		*s = append(*s, c1)

		return nil, errRight
	})
}

func errAfterNext(arr *[]int, a1 []int, c1, c2 int) compose.Unit[scope] {
	return compose.F(func(ctx context.Context, s scope, next compose.Next, args ...any) (any, error) {
		pushArgs(arr, args)
		*s = append(*s, c1)

		rets, err := next(ctx, anys(a1)...)
		if err != nil {
			return nil, err
		}

		pushRets(arr, rets)
		*s = append(*s, c2)

		return nil, errRight
	})
}

// multiNext calls next a second time after recording what the first call returned.
func multiNext(arr *[]int, a1 []int, c1, c2 int) compose.Unit[scope] {
	return compose.F(func(ctx context.Context, s scope, next compose.Next, args ...any) (any, error) {
		pushArgs(arr, args)
		*s = append(*s, c1)

		rets, err := next(ctx, anys(a1)...)
		if err != nil {
			return nil, err
		}

		pushRets(arr, rets)
		*s = append(*s, c2)

		_, err = next(ctx, -1)
		if err != nil {
			return nil, err
		}

		*arr = append(*arr, -1)

		return -1, nil
	})
}

// step records before and after calling next with its own args.
func step(arr *[]int, before, after int) compose.Unit[scope] {
	return compose.F(func(ctx context.Context, _ scope, next compose.Next, args ...any) (any, error) {
		*arr = append(*arr, before)

		ret, err := next(ctx, args...)
		if err != nil {
			return nil, err
		}

		*arr = append(*arr, after)

		return ret, nil
	})
}

// leaf records val and ends the chain.
func leaf(arr *[]int, val int) compose.Unit[scope] {
	return compose.F(func(context.Context, scope, compose.Next, ...any) (any, error) {
		*arr = append(*arr, val)

		return nil, nil
	})
}

func seq(from, to int) []int {
	res := make([]int, 0, to-from)
	for i := from; i < to; i++ {
		res = append(res, i)
	}

	return res
}

func cat(parts ...[]int) []int {
	res := []int{}
	for _, p := range parts {
		res = append(res, p...)
	}

	return res
}
