// Copyright 2018 The Jnm Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package future implements future/promise primitives.
package future

// Value implements a future/promise for a value of type T.
type Value[T any] struct {
	value T

	// ready is a broadcast channel
	ready chan struct{}
}

// New returns a new Value future, whose value is computed by f().
// f() is called concurrently - New doesn't block.
func New[T any](f func() T) *Value[T] {
	result := &Value[T]{ready: make(chan struct{})}
	go func() {
		result.value = f()
		close(result.ready)
	}()
	return result
}

// Get returns the value computed by the function given to New.
// It blocks until the value is ready.
func (v *Value[T]) Get() T {
	<-v.ready
	return v.value
}

// Immediate returns a Value which resolves to 'value'.
func Immediate[T any](value T) *Value[T] {
	return New(func() T { return value })
}
