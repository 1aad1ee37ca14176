// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package protocol

// HostError carries the execution result a failure should be reported with.
// Cause() exposes the wrapped error to errors.Cause.
type HostError struct {
	Result ExecutionResult
	Err    error
}

func (e *HostError) Error() string {
	return e.Err.Error()
}

func (e *HostError) Cause() error {
	return e.Err
}

func (e *HostError) Unwrap() error {
	return e.Err
}

func AuthorizationFailure(err error) error {
	return &HostError{Result: EXECUTION_RESULT_ERROR_AUTHORIZATION, Err: err}
}

func AllocationFailure(err error) error {
	return &HostError{Result: EXECUTION_RESULT_ERROR_ALLOCATION, Err: err}
}

func InputFailure(err error) error {
	return &HostError{Result: EXECUTION_RESULT_ERROR_INPUT, Err: err}
}

func NotDeployedFailure(err error) error {
	return &HostError{Result: EXECUTION_RESULT_ERROR_CONTRACT_NOT_DEPLOYED, Err: err}
}

func UnexpectedFailure(err error) error {
	return &HostError{Result: EXECUTION_RESULT_ERROR_UNEXPECTED, Err: err}
}

type causer interface {
	Cause() error
}

// ResultOf walks the cause chain for the first HostError; unclassified errors are program errors.
func ResultOf(err error) ExecutionResult {
	if err == nil {
		return EXECUTION_RESULT_SUCCESS
	}
	for err != nil {
		if hostErr, ok := err.(*HostError); ok {
			return hostErr.Result
		}
		c, ok := err.(causer)
		if !ok {
			break
		}
		err = c.Cause()
	}
	return EXECUTION_RESULT_ERROR_SMART_CONTRACT
}
