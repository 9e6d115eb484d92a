package contracttest

import (
	"context"
	"fmt"

	cdkerrors "github.com/c123chain/cdk-go/domain/errors"
	"github.com/c123chain/cdk-go/hostfuncs"
	"github.com/c123chain/cdk-go/internal/abi"
)

// arenaMemory exposes the native abi arena as guest memory.
type arenaMemory struct{}

var _ hostfuncs.Memory = arenaMemory{}

func (arenaMemory) Read(ptr, n uint32) ([]byte, bool) {
	return abi.ReadMemory(ptr, n)
}

func (arenaMemory) Write(ptr uint32, data []byte) bool {
	return abi.WriteMemory(ptr, data)
}

func (arenaMemory) Allocate(_ context.Context, size uint32) (ptr uint32, err error) {
	defer func() {
		if r := recover(); r != nil {
			if f, ok := cdkerrors.AsFault(r); ok {
				err = fmt.Errorf("guest allocate(%d): %w", size, f)
				return
			}
			panic(r)
		}
	}()
	return abi.Allocate(size), nil
}
