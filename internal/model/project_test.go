/*
 *  Copyright (c) 2026, APIBlaze, Inc. All Rights Reserved.
 *
 *  Licensed under the Apache License, Version 2.0 (the "License");
 *  you may not use this file except in compliance with the License.
 *  You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 *  Unless required by applicable law or agreed to in writing, software
 *  distributed under the License is distributed on an "AS IS" BASIS,
 *  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *  See the License for the specific language governing permissions and
 *  limitations under the License.
 *
 */

package model

import "testing"

func TestThrottlingInvariant(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*Throttling)
		want  Throttling
		start Throttling
	}{
		{
			name:  "user limit clamps to daily quota",
			start: DefaultThrottling(),
			edit:  func(th *Throttling) { th.SetUserRateLimit(50000) },
			want:  Throttling{UserRateLimit: 10000, ProxyDailyQuota: 10000, AccountMonthlyQuota: 100000},
		},
		{
			name:  "non-positive user limit resets to default",
			start: DefaultThrottling(),
			edit:  func(th *Throttling) { th.SetUserRateLimit(0) },
			want:  DefaultThrottling(),
		},
		{
			name:  "daily quota above monthly resets to default",
			start: DefaultThrottling(),
			edit:  func(th *Throttling) { th.SetProxyDailyQuota(500000) },
			want:  DefaultThrottling(),
		},
		{
			name:  "lowering daily quota re-clamps user limit",
			start: Throttling{UserRateLimit: 100, ProxyDailyQuota: 10000, AccountMonthlyQuota: 100000},
			edit:  func(th *Throttling) { th.SetProxyDailyQuota(50) },
			want:  Throttling{UserRateLimit: 50, ProxyDailyQuota: 50, AccountMonthlyQuota: 100000},
		},
		{
			name:  "lowering monthly quota cascades",
			start: Throttling{UserRateLimit: 5000, ProxyDailyQuota: 10000, AccountMonthlyQuota: 100000},
			edit:  func(th *Throttling) { th.SetAccountMonthlyQuota(2000) },
			want:  Throttling{UserRateLimit: 2000, ProxyDailyQuota: 2000, AccountMonthlyQuota: 2000},
		},
		{
			name:  "non-positive monthly quota resets to default",
			start: DefaultThrottling(),
			edit:  func(th *Throttling) { th.SetAccountMonthlyQuota(-1) },
			want:  DefaultThrottling(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			th := tt.start
			tt.edit(&th)
			if th != tt.want {
				t.Errorf("throttling = %+v, want %+v", th, tt.want)
			}
			if th.UserRateLimit > th.ProxyDailyQuota || th.ProxyDailyQuota > th.AccountMonthlyQuota {
				t.Errorf("invariant violated: %+v", th)
			}
		})
	}
}
