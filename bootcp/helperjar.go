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

package bootcp

// helperJarBase64 is a self-contained jar whose main class prints
//
//	Boot-Class-Path: <value of sun.boot.class.path>
//	Class-Path-Separator: <value of path.separator>
//
// so the probe works against whichever java is on PATH.
const helperJarBase64 = `
UEsDBBQAAAAIAMKCGF0hAsmRMgAAADQAAAAUAAAATUVUQS1JTkYvTUFOSUZFU1QuTUbzTczLTEst
LtENSy0qzszPs1Iw1DPg5fJNzMzTdc5JLC62UnDKzy8BMwMSSzJ4uXi5AFBLAwQUAAAACADCghhd
wcTgIioBAADfAQAAEwAAAEJvb3RDbGFzc1BhdGguY2xhc3NtUMtOwkAUPVfAFijIQ/CtqInioiXG
nexkayIJiRtXA04QQjtNO5jwWbogxoUf4EcZ74CGGDuzuDPnce/N+fx6/wBwiVNC4UYp3ZmIOO4K
/WSBCKWxeBatiQiGrbv+WA60hRQh7YtRQKg3H25XfE9Ho2DYvrhnvqMe5R9zbxZr6VuwCSk11YTa
0jlSrS7bNJul8NsOcshnkYVDqCYILBQJmdAA3KKZNN1BCeUcNlAhWAvlJHCwucRqhPxQ6m6kQhnp
GeEsqcd/yMEWtnO81w6hbFJyFzG5Jqfrho09XjeeBl6fKW9gKC9kysYBp7SSuj0ZikhoFRnTEaFo
VF78i9o45ruGNMwhnpfBOleLf1eME9fzVxQq+3NUTT18w+4cdfNs/EAnS+hl0QLfUEsBAhQDFAAA
AAgAwoIYXSECyZEyAAAANAAAABQAAAAAAAAAAAAAAIABAAAAAE1FVEEtSU5GL01BTklGRVNULk1G
UEsBAhQDFAAAAAgAwoIYXcHE4CIqAQAA3wEAABMAAAAAAAAAAAAAAIABZAAAAEJvb3RDbGFzc1Bh
dGguY2xhc3NQSwUGAAAAAAIAAgCDAAAAvwEAAAAA
`
